package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/aristath/radar-runner/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is not a real test: it is the child process spawned by
// the tests below. It prints its arguments and exits with the code given
// by HELPER_EXIT_CODE.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	fmt.Fprint(os.Stdout, strings.Join(args, " "))
	fmt.Fprint(os.Stderr, "helper stderr")

	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT_CODE"))
	os.Exit(code)
}

func helperInvocation(args ...string) domain.Invocation {
	return domain.Invocation{
		Program: os.Args[0],
		Args:    append([]string{"-test.run=TestHelperProcess", "--"}, args...),
	}
}

func newTestLauncher(stdout, stderr *bytes.Buffer) *ExecLauncher {
	return New(zerolog.Nop()).WithStreams(strings.NewReader(""), stdout, stderr)
}

func TestLaunch_Success(t *testing.T) {
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("HELPER_EXIT_CODE", "0")

	var stdout, stderr bytes.Buffer
	inv := helperInvocation("cotacoes", "VALE3")
	inv.OutputPath = "/tmp/cotacoes.csv"

	result, err := newTestLauncher(&stdout, &stderr).Launch(context.Background(), inv)

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "cotacoes VALE3 --saida /tmp/cotacoes.csv", stdout.String())
	assert.Equal(t, "helper stderr", stderr.String())
}

func TestLaunch_NonZeroExitIsAResult(t *testing.T) {
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("HELPER_EXIT_CODE", "3")

	var stdout, stderr bytes.Buffer
	result, err := newTestLauncher(&stdout, &stderr).Launch(context.Background(), helperInvocation("export"))

	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
}

func TestLaunch_MissingProgram(t *testing.T) {
	var stdout, stderr bytes.Buffer
	inv := domain.Invocation{Program: "radar-fundamentos-does-not-exist", Args: []string{"cotacoes"}}

	result, err := newTestLauncher(&stdout, &stderr).Launch(context.Background(), inv)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "radar-fundamentos-does-not-exist")
	assert.Equal(t, -1, result.ExitCode)
}

func TestLaunch_EmptyProgram(t *testing.T) {
	_, err := New(zerolog.Nop()).Launch(context.Background(), domain.Invocation{})
	assert.True(t, errors.Is(err, ErrEmptyProgram))
}

func TestLaunch_CancelledContextDoesNotStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	_, err := newTestLauncher(&stdout, &stderr).Launch(ctx, helperInvocation("cotacoes"))

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, stdout.String())
}
