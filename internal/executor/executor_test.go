package executor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proj/internal/config"
	"proj/internal/resolver"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests spawn POSIX shell commands")
	}
}

func command(name, exec string) *config.Command {
	return &config.Command{Name: name, Exec: config.Exec{Command: exec}}
}

func TestExecute_RunsStepsInOrder(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer

	plan := resolver.Plan{
		command("first", "echo first"),
		command("second", "echo second"),
	}

	results, err := Execute(context.Background(), plan, Options{
		BaseDir: t.TempDir(),
		Stdout:  &out,
		Stderr:  &out,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, 0, results[0].ExitCode)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, 0, results[1].ExitCode)

	firstIdx := strings.Index(out.String(), "first")
	secondIdx := strings.Index(out.String(), "second")
	require.GreaterOrEqual(t, firstIdx, 0)
	assert.Greater(t, secondIdx, firstIdx)
}

func TestExecute_NonZeroExitIsData(t *testing.T) {
	skipOnWindows(t)

	plan := resolver.Plan{command("fail", "sh -c 'exit 3'")}

	results, err := Execute(context.Background(), plan, Options{BaseDir: t.TempDir()})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].ExitCode)
	assert.True(t, AnyFailed(results))
}

func TestExecute_StopPolicySkipsRemainingSteps(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer

	plan := resolver.Plan{
		command("fail", "false"),
		command("after", "echo should-not-run"),
	}

	results, err := Execute(context.Background(), plan, Options{
		OnFailure: config.OnFailureStop,
		BaseDir:   t.TempDir(),
		Stdout:    &out,
		Stderr:    &out,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotZero(t, results[0].ExitCode)
	assert.NotContains(t, out.String(), "should-not-run")
}

func TestExecute_ContinuePolicyRunsAllSteps(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer

	plan := resolver.Plan{
		command("fail", "false"),
		command("after", "echo still-runs"),
	}

	results, err := Execute(context.Background(), plan, Options{
		OnFailure: config.OnFailureContinue,
		BaseDir:   t.TempDir(),
		Stdout:    &out,
		Stderr:    &out,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotZero(t, results[0].ExitCode)
	assert.Zero(t, results[1].ExitCode)
	assert.Contains(t, out.String(), "still-runs")
	assert.True(t, AnyFailed(results))
}

func TestExecute_WorkdirDefaultsToBaseDir(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer
	base := t.TempDir()

	plan := resolver.Plan{command("where", "pwd")}

	_, err := Execute(context.Background(), plan, Options{
		BaseDir: base,
		Stdout:  &out,
		Stderr:  &out,
	})
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(base)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecute_RelativeWorkdir(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "sub"), 0755))

	cmd := command("where", "pwd")
	cmd.Workdir = "sub"

	_, err := Execute(context.Background(), resolver.Plan{cmd}, Options{
		BaseDir: base,
		Stdout:  &out,
		Stderr:  &out,
	})
	require.NoError(t, err)
	assert.Contains(t, strings.TrimSpace(out.String()), "sub")
}

func TestExecute_EnvOverridesHost(t *testing.T) {
	skipOnWindows(t)
	t.Setenv("PROJ_TEST_VALUE", "host")
	var out bytes.Buffer

	cmd := command("show", `sh -c 'echo "$PROJ_TEST_VALUE"'`)
	cmd.Env = map[string]string{"PROJ_TEST_VALUE": "override"}

	_, err := Execute(context.Background(), resolver.Plan{cmd}, Options{
		BaseDir: t.TempDir(),
		Stdout:  &out,
		Stderr:  &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "override", strings.TrimSpace(out.String()))
}

func TestExecute_SpawnFailureAbortsPlan(t *testing.T) {
	plan := resolver.Plan{
		command("ghost", "proj-test-no-such-binary-a8f2"),
		command("after", "echo never"),
	}

	var out bytes.Buffer
	results, err := Execute(context.Background(), plan, Options{
		// Spawn failures abort even under continue.
		OnFailure: config.OnFailureContinue,
		BaseDir:   t.TempDir(),
		Stdout:    &out,
		Stderr:    &out,
	})
	require.Error(t, err)

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, "ghost", spawnErr.Name)
	assert.Empty(t, results)
	assert.NotContains(t, out.String(), "never")
}

func TestExecute_CancelledContextKillsChild(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	plan := resolver.Plan{
		command("sleep", "sleep 30"),
		command("after", "echo never"),
	}

	start := time.Now()
	results, err := Execute(ctx, plan, Options{BaseDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Less(t, time.Since(start), 10*time.Second, "child was not killed on cancel")
}

func TestExecute_DryRunSpawnsNothing(t *testing.T) {
	var out bytes.Buffer
	marker := filepath.Join(t.TempDir(), "marker")

	plan := resolver.Plan{command("touch", "touch "+marker)}

	results, err := Execute(context.Background(), plan, Options{
		BaseDir: t.TempDir(),
		DryRun:  true,
		Stdout:  &out,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].ExitCode)
	assert.Contains(t, out.String(), "touch "+marker)

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "dry run must not execute the command")
}

func TestExecute_ArgvListForm(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer

	cmd := &config.Command{
		Name: "list",
		Exec: config.Exec{Args: []string{"echo", "one two"}},
	}

	_, err := Execute(context.Background(), resolver.Plan{cmd}, Options{
		BaseDir: t.TempDir(),
		Stdout:  &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "one two", strings.TrimSpace(out.String()))
}

func TestExecute_StepStartCallback(t *testing.T) {
	skipOnWindows(t)

	var seen []string
	plan := resolver.Plan{
		command("a", "true"),
		command("b", "true"),
	}

	_, err := Execute(context.Background(), plan, Options{
		BaseDir: t.TempDir(),
		OnStepStart: func(index, total int, cmd *config.Command) {
			seen = append(seen, cmd.Name)
			assert.Equal(t, 2, total)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestTotalDuration(t *testing.T) {
	results := []Result{
		{Name: "a", Duration: time.Second},
		{Name: "b", Duration: 2 * time.Second},
	}
	assert.Equal(t, 3*time.Second, TotalDuration(results))
}
