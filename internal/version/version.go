package version

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

// Version is the release baseline, overridable at link time.
var Version = "1.0.0"

type gitRunner func(args ...string) (string, error)

// Resolve returns the version string for this binary: the module version
// stamped by the Go toolchain when the binary was installed from a tagged
// release, otherwise the baseline with a git-describe suffix for source
// checkouts.
func Resolve() string {
	return resolve(Version, debug.ReadBuildInfo, execGit)
}

func resolve(base string, readBuildInfo func() (*debug.BuildInfo, bool), git gitRunner) string {
	if base == "" {
		base = "0.0.0"
	}

	if stamped := stampedVersion(readBuildInfo); stamped != "" {
		return stamped
	}

	desc, err := describeWorkTree(git)
	if err != nil || desc == "" {
		return base
	}
	if desc == "v"+base {
		return base
	}
	return base + "-" + strings.TrimPrefix(desc, "v"+base+"-")
}

// stampedVersion reports the main module version recorded in the build
// info, empty for source builds ("(devel)") and binaries without it.
func stampedVersion(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok || info == nil {
		return ""
	}
	v := info.Main.Version
	if v == "" || v == "(devel)" {
		return ""
	}
	return strings.TrimPrefix(v, "v")
}

// describeWorkTree asks git for a tag-relative description of HEAD. An
// empty description with a nil error means HEAD sits exactly on a
// release tag.
func describeWorkTree(git gitRunner) (string, error) {
	if _, err := git("rev-parse", "--git-dir"); err != nil {
		return "", err
	}
	if _, err := git("describe", "--tags", "--exact-match"); err == nil {
		return "", nil
	}
	return git("describe", "--tags", "--dirty", "--always")
}

func execGit(args ...string) (string, error) {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
