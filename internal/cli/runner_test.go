package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/shoplist/internal/config"
	"github.com/dukerupert/shoplist/internal/shoplist"
	"github.com/dukerupert/shoplist/internal/tui"
)

type testRunner struct {
	*Runner
	out, err *bytes.Buffer
	copied   string
}

func newTestRunner(t *testing.T) *testRunner {
	t.Helper()
	dir := t.TempDir()
	tr := &testRunner{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	tr.Runner = &Runner{
		Config: &config.Config{
			DBPath:    filepath.Join(dir, "shoplist.db"),
			BackupDir: filepath.Join(dir, "backups"),
			Shops:     []string{"Carrefour", "Colruyt", "Spar"},
			Theme:     "classic",
		},
		Out: tr.out,
		Err: tr.err,
		Clipboard: func(text string) error {
			tr.copied = text
			return nil
		},
	}
	return tr
}

// run executes args with fresh output buffers.
func (tr *testRunner) run(args ...string) int {
	tr.out.Reset()
	tr.err.Reset()
	return tr.Run(args)
}

func (tr *testRunner) articles(t *testing.T, shop string) []string {
	t.Helper()
	s, err := shoplist.OpenSession(tr.Config.DBPath, shop, nil, nil)
	require.NoError(t, err)
	defer s.Close()
	var out []string
	for _, a := range s.List.Articles() {
		out = append(out, a.String())
	}
	return out
}

func TestHelpAndUnknown(t *testing.T) {
	tr := newTestRunner(t)

	assert.Equal(t, ExitOK, tr.run("help"))
	assert.Contains(t, tr.out.String(), "Subcommands:")

	assert.Equal(t, ExitUsage, tr.run("frobnicate"))
	assert.Contains(t, tr.err.String(), "unknown subcommand: frobnicate")
}

func TestAddAndList(t *testing.T) {
	tr := newTestRunner(t)

	require.Equal(t, ExitOK, tr.run("add", "-n", "2", "-m", "L", "Milk"))
	assert.Contains(t, tr.out.String(), "added 2L Milk to Carrefour")
	require.Equal(t, ExitOK, tr.run("add", "Whole", "wheat", "bread"))

	require.Equal(t, ExitOK, tr.run("ls"))
	out := tr.out.String()
	assert.Contains(t, out, "Carrefour")
	assert.Contains(t, out, " 1. [ ] 2L Milk")
	assert.Contains(t, out, " 2. [ ] 1 Whole wheat bread")
}

func TestListGroupedByAisle(t *testing.T) {
	tr := newTestRunner(t)
	for _, n := range []string{"Milk", "Bread", "Cheese"} {
		require.Equal(t, ExitOK, tr.run("add", n))
	}

	require.Equal(t, ExitOK, tr.run("ls", "-group"))
	out := tr.out.String()
	assert.Contains(t, out, "Bakery")
	assert.Contains(t, out, " 2. [ ] 1 Bread")
	assert.Contains(t, out, " 3. [ ] 1 Cheese")
	assert.Less(t, strings.Index(out, "Bakery"), strings.Index(out, "Dairy"))

	assert.Equal(t, ExitUsage, tr.run("ls", "-bogus"))
}

func TestAddRequiresName(t *testing.T) {
	tr := newTestRunner(t)
	assert.Equal(t, ExitUsage, tr.run("add", "-n", "3"))
	assert.Equal(t, ExitUsage, tr.run("add", "-x", "Milk"))
}

func TestUseSwitchesShop(t *testing.T) {
	tr := newTestRunner(t)

	require.Equal(t, ExitOK, tr.run("use", "Delhaize"))
	require.Equal(t, ExitOK, tr.run("add", "Eggs"))
	assert.Contains(t, tr.out.String(), "to Delhaize")

	require.Equal(t, ExitOK, tr.run("shops"))
	assert.Contains(t, tr.out.String(), "* Delhaize")
	assert.Contains(t, tr.out.String(), "  Spar")

	assert.Equal(t, []string{"1 Eggs"}, tr.articles(t, "Delhaize"))
	assert.Empty(t, tr.articles(t, "Carrefour"))
}

func TestShopFlagOverridesCurrent(t *testing.T) {
	tr := newTestRunner(t)
	require.Equal(t, ExitOK, tr.run("use", "Carrefour"))

	tr.Shop = "Colruyt"
	require.Equal(t, ExitOK, tr.run("add", "Milk"))
	assert.Contains(t, tr.out.String(), "to Colruyt")

	tr.Shop = ""
	require.Equal(t, ExitOK, tr.run("shops"))
	assert.Contains(t, tr.out.String(), "* Carrefour")
	assert.Contains(t, tr.out.String(), "  Colruyt")

	require.Equal(t, ExitOK, tr.run("add", "Bread"))
	assert.Contains(t, tr.out.String(), "to Carrefour")
	assert.Equal(t, []string{"1 Milk"}, tr.articles(t, "Colruyt"))
}

func TestBackupRejectsUnknownArgument(t *testing.T) {
	tr := newTestRunner(t)
	tr.Config.BackupPassphrase = "hunter2"

	assert.Equal(t, ExitUsage, tr.run("backup", "now"))
	assert.Contains(t, tr.err.String(), "usage: shoplist backup [ls]")
	assert.Equal(t, ExitUsage, tr.run("backup", "ls", "extra"))

	files, err := os.ReadDir(tr.Config.BackupDir)
	assert.True(t, os.IsNotExist(err), "no snapshot written")
	assert.Empty(t, files)
}

func TestRemove(t *testing.T) {
	tr := newTestRunner(t)
	for _, n := range []string{"Milk", "Bread", "Eggs", "Butter"} {
		require.Equal(t, ExitOK, tr.run("add", n))
	}

	require.Equal(t, ExitOK, tr.run("rm", "2"))
	assert.Contains(t, tr.out.String(), `Removed "Bread"`)

	require.Equal(t, ExitOK, tr.run("rm", "3", "1"))
	assert.Contains(t, tr.out.String(), "Removed 2 articles")
	assert.Equal(t, []string{"1 Eggs"}, tr.articles(t, "Carrefour"))

	assert.Equal(t, ExitUsage, tr.run("rm", "5"))
	assert.Contains(t, tr.err.String(), "index out of range: have 1, got 5")
	assert.Equal(t, ExitUsage, tr.run("rm", "one"))
	assert.Equal(t, ExitUsage, tr.run("rm"))
}

func TestClear(t *testing.T) {
	tr := newTestRunner(t)
	require.Equal(t, ExitOK, tr.run("add", "Milk"))
	require.Equal(t, ExitOK, tr.run("add", "Bread"))

	require.Equal(t, ExitOK, tr.run("clear"))
	assert.Contains(t, tr.out.String(), "Removed all articles from Carrefour")

	require.Equal(t, ExitOK, tr.run("clear"))
	assert.Contains(t, tr.out.String(), "Nothing to remove")
}

func TestDoneMoveSort(t *testing.T) {
	tr := newTestRunner(t)
	for _, n := range []string{"Milk", "Bread", "Eggs"} {
		require.Equal(t, ExitOK, tr.run("add", n))
	}

	require.Equal(t, ExitOK, tr.run("done", "1", "3"))
	require.Equal(t, ExitOK, tr.run("ls"))
	assert.Contains(t, tr.out.String(), " 1. [x]")
	assert.Contains(t, tr.out.String(), " 2. [ ] 1 Bread")

	require.Equal(t, ExitOK, tr.run("mv", "3", "1"))
	assert.Equal(t, []string{"1 Eggs", "1 Milk", "1 Bread"}, tr.articles(t, "Carrefour"))
	assert.Equal(t, ExitUsage, tr.run("mv", "1"))
	assert.Equal(t, ExitUsage, tr.run("mv", "1", "9"))

	require.Equal(t, ExitOK, tr.run("sort"))
	assert.Equal(t, []string{"1 Bread", "1 Eggs", "1 Milk"}, tr.articles(t, "Carrefour"))
}

func TestCopy(t *testing.T) {
	tr := newTestRunner(t)

	require.Equal(t, ExitOK, tr.run("copy"))
	assert.Contains(t, tr.out.String(), "Nothing to copy")
	assert.Empty(t, tr.copied)

	require.Equal(t, ExitOK, tr.run("add", "-n", "2", "-m", "L", "Milk"))
	require.Equal(t, ExitOK, tr.run("add", "Bread"))

	require.Equal(t, ExitOK, tr.run("copy"))
	assert.Equal(t, "2L Milk\n1 Bread\n", tr.copied)
	assert.Contains(t, tr.out.String(), "Copied 2 articles")

	require.Equal(t, ExitOK, tr.run("copy", "2"))
	assert.Equal(t, "1 Bread\n", tr.copied)

	tr.Clipboard = func(string) error { return errors.New("no display") }
	assert.Equal(t, ExitError, tr.run("copy"))
	assert.Contains(t, tr.err.String(), "no display")
}

func TestOpenRunsInteractive(t *testing.T) {
	tr := newTestRunner(t)
	tr.Config.Theme = "neon"

	var shop string
	tr.Interactive = func(s *shoplist.Session, theme tui.Theme) error {
		shop = s.Shop.Name
		_, _, err := s.List.AddInput("Milk", "1", "")
		return err
	}
	require.Equal(t, ExitOK, tr.run())
	assert.Equal(t, "Carrefour", shop)
	assert.Equal(t, []string{"1 Milk"}, tr.articles(t, "Carrefour"))

	tr.Interactive = func(*shoplist.Session, tui.Theme) error { return errors.New("no tty") }
	assert.Equal(t, ExitError, tr.run("open"))
}

func TestBackupAndRestore(t *testing.T) {
	tr := newTestRunner(t)
	require.Equal(t, ExitOK, tr.run("add", "Milk"))

	assert.Equal(t, ExitUsage, tr.run("backup"))
	assert.Contains(t, tr.err.String(), "SHOPLIST_BACKUP_PASSPHRASE")

	tr.Config.BackupPassphrase = "hunter2"
	require.Equal(t, ExitOK, tr.run("backup"))

	require.Equal(t, ExitOK, tr.run("backup", "ls"))
	name := tr.out.String()
	require.NotEmpty(t, name)
	name = name[:len(name)-1]

	require.Equal(t, ExitOK, tr.run("add", "Bread"))
	require.Equal(t, ExitOK, tr.run("restore", name))
	assert.Equal(t, []string{"1 Milk"}, tr.articles(t, "Carrefour"))

	tr.Config.BackupPassphrase = "wrong"
	assert.Equal(t, ExitError, tr.run("restore", name))
	assert.Equal(t, ExitUsage, tr.run("restore"))
}

func TestBackupListEmpty(t *testing.T) {
	tr := newTestRunner(t)
	require.Equal(t, ExitOK, tr.run("backup", "ls"))
	assert.Contains(t, tr.out.String(), "no backups")
	_, err := os.Stat(tr.Config.BackupDir)
	assert.True(t, os.IsNotExist(err))
}
