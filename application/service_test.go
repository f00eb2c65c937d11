package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/acversion/application"
	"github.com/rios0rios0/acversion/domain"
	testdoubles "github.com/rios0rios0/acversion/test"
)

// --- helpers ---

func buildParams() application.Params {
	return application.Params{
		Owner:           "mozilla-mobile",
		Repository:      "fenix",
		VersionFile:     "version.txt",
		BuildDescriptor: "buildSrc/src/main/java/AndroidComponents.kt",
	}
}

func branches(names ...string) []domain.Branch {
	result := make([]domain.Branch, 0, len(names))
	for _, name := range names {
		result = append(result, domain.Branch{Name: name})
	}
	return result
}

// --- tests ---

func TestDiscoveryService_Run(t *testing.T) {
	t.Parallel()

	t.Run("should publish the major A-C version of the latest Beta", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		params := buildParams()
		spyProv := &testdoubles.SpyProvider{
			ProviderName: "github",
			Branches:     branches("releases_v100.0.0", "releases_v99.0.0"),
			FileContents: map[string]string{
				testdoubles.FileKey("releases_v100.0.0", "version.txt"):                                "100.0b5\n",
				testdoubles.FileKey("releases_v100.0.0", "buildSrc/src/main/java/AndroidComponents.kt"): `VERSION = "87.0b2"`,
			},
		}
		spyOut := &testdoubles.SpyOutputWriter{}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, params)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"major-ac-version": "87"}, spyOut.Outputs)
		// both files were fetched from the selected branch, in pipeline order
		assert.Equal(t, []string{
			"releases_v100.0.0:version.txt",
			"releases_v100.0.0:buildSrc/src/main/java/AndroidComponents.kt",
		}, spyProv.RequestedFiles)
		require.Len(t, spyProv.ListedRepos, 1)
		assert.Equal(t, "mozilla-mobile", spyProv.ListedRepos[0].Organization)
		assert.Equal(t, "fenix", spyProv.ListedRepos[0].Name)
	})

	t.Run("should fail without output when the branch is not in Beta", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		spyProv := &testdoubles.SpyProvider{
			ProviderName: "github",
			Branches:     branches("releases_v100.0.0", "releases_v99.0.0"),
			FileContents: map[string]string{
				testdoubles.FileKey("releases_v100.0.0", "version.txt"): "100.0.0",
			},
		}
		spyOut := &testdoubles.SpyOutputWriter{}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, buildParams())

		// then
		require.ErrorIs(t, err, domain.ErrNotBetaBranch)
		assert.Contains(t, err.Error(), "releases_v100.0.0")
		assert.Empty(t, spyOut.Outputs)
		// the build descriptor must not even be fetched
		assert.Equal(t, []string{"releases_v100.0.0:version.txt"}, spyProv.RequestedFiles)
	})

	t.Run("should fail when no release branch exists", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		spyProv := &testdoubles.SpyProvider{
			ProviderName: "github",
			Branches:     branches("main", "feature/foo"),
		}
		spyOut := &testdoubles.SpyOutputWriter{}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, buildParams())

		// then
		require.ErrorIs(t, err, domain.ErrNoReleaseBranch)
		assert.Empty(t, spyOut.Outputs)
		assert.Empty(t, spyProv.RequestedFiles)
	})

	t.Run("should propagate branch listing failures", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		listErr := errors.New("boom")
		spyProv := &testdoubles.SpyProvider{
			ProviderName:    "github",
			ListBranchesErr: listErr,
		}
		spyOut := &testdoubles.SpyOutputWriter{}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, buildParams())

		// then
		require.ErrorIs(t, err, listErr)
		assert.Empty(t, spyOut.Outputs)
	})

	t.Run("should propagate a missing version.txt as a fatal error", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		spyProv := &testdoubles.SpyProvider{
			ProviderName: "github",
			Branches:     branches("releases_v100.0.0"),
			FileContents: map[string]string{},
		}
		spyOut := &testdoubles.SpyOutputWriter{}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, buildParams())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "version.txt")
		assert.Empty(t, spyOut.Outputs)
	})

	t.Run("should fail when the build descriptor has no VERSION marker", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		spyProv := &testdoubles.SpyProvider{
			ProviderName: "github",
			Branches:     branches("releases_v100.0.0"),
			FileContents: map[string]string{
				testdoubles.FileKey("releases_v100.0.0", "version.txt"):                                "100.0b1",
				testdoubles.FileKey("releases_v100.0.0", "buildSrc/src/main/java/AndroidComponents.kt"): "no marker here",
			},
		}
		spyOut := &testdoubles.SpyOutputWriter{}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, buildParams())

		// then
		require.ErrorIs(t, err, domain.ErrVersionMarkerNotFound)
		assert.Empty(t, spyOut.Outputs)
	})

	t.Run("should fail when the pinned A-C version is malformed", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		spyProv := &testdoubles.SpyProvider{
			ProviderName: "github",
			Branches:     branches("releases_v100.0.0"),
			FileContents: map[string]string{
				testdoubles.FileKey("releases_v100.0.0", "version.txt"):                                "100.0b1",
				testdoubles.FileKey("releases_v100.0.0", "buildSrc/src/main/java/AndroidComponents.kt"): `VERSION = "87.1"`,
			},
		}
		spyOut := &testdoubles.SpyOutputWriter{}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, buildParams())

		// then
		var invalidErr *domain.InvalidVersionError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, "87.1", invalidErr.Version)
		assert.Empty(t, spyOut.Outputs)
	})

	t.Run("should surface output writer failures", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		setErr := errors.New("disk full")
		spyProv := &testdoubles.SpyProvider{
			ProviderName: "github",
			Branches:     branches("releases_v100.0.0"),
			FileContents: map[string]string{
				testdoubles.FileKey("releases_v100.0.0", "version.txt"):                                "100.0b1",
				testdoubles.FileKey("releases_v100.0.0", "buildSrc/src/main/java/AndroidComponents.kt"): `VERSION = "87.0b2"`,
			},
		}
		spyOut := &testdoubles.SpyOutputWriter{SetErr: setErr}
		svc := application.NewDiscoveryService(spyProv, spyOut)

		// when
		err := svc.Run(ctx, buildParams())

		// then
		require.ErrorIs(t, err, setErr)
	})
}
