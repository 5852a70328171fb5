package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/bootcamp/internal/pizza"
	"github.com/idilsaglam/bootcamp/internal/ui"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	code = Execute(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestPizzaCommand(t *testing.T) {
	code, out, _ := run(t, "pizza", "--size", "Grande", "--cheese", "extra", "--main", "jamon", "--second", "piña")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "size: Grande")
	assert.Contains(t, out, "Main Ingredient: Jamón")
	assert.Contains(t, out, "Second Ingredient: Piña")
	assert.Contains(t, out, "tomato Sauce: normal", "untouched options keep their defaults")
}

func TestPizzaCommandJSON(t *testing.T) {
	code, out, _ := run(t, "pizza", "--json", "--size", "s")
	require.Equal(t, 0, code)

	var p pizza.Pizza
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "Pequeña", p.Size)
	assert.Equal(t, "none", p.MainIngredient)
}

func TestDBCommand(t *testing.T) {
	code, out, _ := run(t, "db")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "db2.Connect() = false")
	assert.Contains(t, out, "Are db1 and db2 the same instance?: true")
	assert.Contains(t, out, "Is the explicit connection shared?: false")
}

func TestMatchCommand(t *testing.T) {
	code, out, _ := run(t, "match", "--events", "2", "--interval", "0s", "--fan", "Barcelona")
	require.Equal(t, 0, code)
	assert.Equal(t, 2, strings.Count(out, "LIVE TV SCOREBOARD"))
	assert.Equal(t, 2, strings.Count(out, "[Fan of Barcelona]"))
	assert.NotContains(t, out, "[Fan of Real Madrid]", "--fan replaces the default fans")
}

func TestSeedCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "docs.db")

	code, out, _ := run(t, "seed", "--db", db)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Product-db: 1 collections created, 3 products inserted, 0 rejected, 4 users created")

	code, out, _ = run(t, "seed", "--db", db)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "0 users created, 4 already existed")
}

func TestServeInvalidKind(t *testing.T) {
	code, out, _ := run(t, "serve", "--kind", "grpc")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Invalid choice. Exiting.\n", out)
}

func TestServeInvalidKindFromEnv(t *testing.T) {
	t.Setenv("BOOTCAMP_USERS_KIND", "grpc")
	code, out, _ := run(t, "serve")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Invalid choice. Exiting.")
}

func TestServeMenuNumber(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := Execute(ctx, []string{"serve", "--kind", "1", "--addr", "127.0.0.1:0"}, &out, &errOut)
	assert.Equal(t, 0, code)
	assert.NotContains(t, out.String(), "Invalid choice")
	assert.Contains(t, errOut.String(), "kind=native")
}

func TestBadUsersKindDoesNotAffectOtherCommands(t *testing.T) {
	t.Setenv("BOOTCAMP_USERS_KIND", "grpc")
	code, out, _ := run(t, "pizza")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "size: m")
}

func TestThemeFlags(t *testing.T) {
	t.Cleanup(func() {
		ui.SetTheme("classic")
		ui.SetColorForcing(false, false)
	})

	code, _, _ := run(t, "--theme", "mono", "pizza")
	require.Equal(t, 0, code)
	assert.Equal(t, "[x]", ui.Current().BoxChecked)

	code, _, _ = run(t, "--no-color", "pizza")
	require.Equal(t, 0, code)
	assert.Equal(t, "☑", ui.Current().BoxChecked, "theme falls back to classic")
	ui.SetColorForcing(true, false)
	assert.Equal(t, "\033[31mred\033[0m", ui.C("\033[31m", "red"))

	t.Setenv("BOOTCAMP_UI_NO_COLOR", "true")
	code, _, _ = run(t, "pizza")
	require.Equal(t, 0, code)
	assert.Equal(t, "red", ui.C("\033[31m", "red"))
}

func TestTodoUsageExitCode(t *testing.T) {
	t.Setenv("BOOTCAMP_CREDENTIALS_DIR", t.TempDir())
	code, _, errOut := run(t, "todo", "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown subcommand")
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := run(t, "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown command")
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv("BOOTCAMP_LOG_LEVEL", "debug")
	t.Setenv("BOOTCAMP_LOG_FORMAT", "json")
	code, _, errOut := run(t, "match", "--events", "1", "--interval", "0s")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, `"msg":"notifying observers"`)
}
