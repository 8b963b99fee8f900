package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const testConfig = `validator: kind: "yaml"
haltCommand: ["true"]
`

const testMaster = `version: 2.1
workflows:
  releases:
    jobs:
      ${WORKFLOW_JOBS_LIST}
jobs:
  ${JOBS_LIST}
`

type testRepo struct {
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

// baseFiles is the content of the baseline commit.
func baseFiles() map[string]string {
	return map[string]string{
		".releaseci.cue":                             testConfig,
		".circleci/templates/config.yml":             testMaster,
		".circleci/templates/workflow-changed.yml":   "      - build-${RELEASE}\n",
		".circleci/templates/workflow-unchanged.yml": "      - skip-${RELEASE}\n",
		".circleci/templates/job-changed.yml":        "  build-${RELEASE}:\n    steps: [build]\n",
		".circleci/templates/job-unchanged.yml":      "  skip-${RELEASE}:\n    steps: [noop]\n",
		".circleci/config.yml":                       "version: 2.1\n",
		"releases/alpha/1/bare/activate":             "#!/bin/sh\n",
		"releases/dogwood/3/fun/activate":            "#!/bin/sh\n",
		"README.md":                                  "readme\n",
	}
}

// setupRepo commits baseFiles on master and checks out a feature branch.
func setupRepo(t *testing.T) *testRepo {
	t.Helper()
	return setupRepoWith(t, baseFiles())
}

// relocatedFiles is baseFiles with the releases moved under deploy/releases.
func relocatedFiles() map[string]string {
	files := make(map[string]string)
	for name, content := range baseFiles() {
		if strings.HasPrefix(name, "releases/") {
			name = "deploy/" + name
		}
		files[name] = content
	}
	files[".releaseci.cue"] = testConfig + `releasesDir: "deploy/releases"
`
	return files
}

// setupRepoWith commits files on master and checks out a feature branch.
func setupRepoWith(t *testing.T, files map[string]string) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	tr := &testRepo{dir: dir, repo: repo, wt: wt}
	tr.commit(t, "baseline", files)

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	return tr
}

func (tr *testRepo) write(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(tr.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func (tr *testRepo) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(tr.dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func (tr *testRepo) commit(t *testing.T, msg string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		tr.write(t, name, content)
		if _, err := tr.wt.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()}
	if _, err := tr.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

// clearReleaseEnv isolates tests from the CI environment they may run in.
func clearReleaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CIRCLE_TAG", "CIRCLE_JOB", "RELEASECI_BASELINE", "RELEASECI_TARGET", "RELEASECI_VALIDATOR"} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if dir != "" {
		flags = append(flags, "--repo", dir)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
