package version

import (
	"errors"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func noBuildInfo() (*debug.BuildInfo, bool) {
	return nil, false
}

func buildInfoWith(version string) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: version}}, true
	}
}

func gitRepo(exactTag string, exactErr error, describe string, describeErr error) gitRunner {
	return func(args ...string) (string, error) {
		if len(args) == 0 {
			return "", errors.New("no args")
		}
		switch args[0] {
		case "rev-parse":
			return ".git", nil
		case "describe":
			for _, a := range args {
				if a == "--exact-match" {
					return exactTag, exactErr
				}
			}
			return describe, describeErr
		default:
			return "", errors.New("unexpected git subcommand " + args[0])
		}
	}
}

func noRepo() gitRunner {
	return func(...string) (string, error) {
		return "", errors.New("not a git repository")
	}
}

func TestResolveStampedModuleVersion(t *testing.T) {
	t.Parallel()
	got := resolve("1.0.0", buildInfoWith("v1.2.3"), noRepo())
	require.Equal(t, "1.2.3", got)
}

func TestResolveDevelBuildFallsThroughToGit(t *testing.T) {
	t.Parallel()
	git := gitRepo("", errors.New("no tag"), "v1.0.0-3-gabcdef", nil)
	got := resolve("1.0.0", buildInfoWith("(devel)"), git)
	require.Equal(t, "1.0.0-3-gabcdef", got)
}

func TestResolveTaggedCheckout(t *testing.T) {
	t.Parallel()
	git := gitRepo("v1.0.0", nil, "", nil)
	got := resolve("1.0.0", noBuildInfo, git)
	require.Equal(t, "1.0.0", got)
}

func TestResolveUntaggedCheckout(t *testing.T) {
	t.Parallel()
	git := gitRepo("", errors.New("no tag"), "abcdef", nil)
	got := resolve("1.0.0", noBuildInfo, git)
	require.Equal(t, "1.0.0-abcdef", got)
}

func TestResolveOutsideGitRepo(t *testing.T) {
	t.Parallel()
	got := resolve("1.0.0", noBuildInfo, noRepo())
	require.Equal(t, "1.0.0", got)
}

func TestResolveDescribeFailure(t *testing.T) {
	t.Parallel()
	git := gitRepo("", errors.New("no tag"), "", errors.New("describe failed"))
	got := resolve("1.0.0", noBuildInfo, git)
	require.Equal(t, "1.0.0", got)
}

func TestResolveEmptyBaseFallsBackToZero(t *testing.T) {
	t.Parallel()
	got := resolve("", noBuildInfo, noRepo())
	require.Equal(t, "0.0.0", got)
}

func TestStampedVersionStripsPrefix(t *testing.T) {
	t.Parallel()
	require.Equal(t, "2.0.1", stampedVersion(buildInfoWith("v2.0.1")))
	require.Empty(t, stampedVersion(buildInfoWith("(devel)")))
	require.Empty(t, stampedVersion(noBuildInfo))
}
