// Package cli is the non-interactive front-end: one subcommand per list
// operation, each returning a process exit code.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"

	"github.com/dukerupert/shoplist/internal/backup"
	"github.com/dukerupert/shoplist/internal/config"
	"github.com/dukerupert/shoplist/internal/database"
	"github.com/dukerupert/shoplist/internal/model"
	"github.com/dukerupert/shoplist/internal/shoplist"
	"github.com/dukerupert/shoplist/internal/store"
	"github.com/dukerupert/shoplist/internal/tui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// Runner executes subcommands against the configured database.
type Runner struct {
	Config *config.Config
	// Shop overrides the current shop for this invocation.
	Shop   string
	Out    io.Writer
	Err    io.Writer
	Logger *slog.Logger

	// Clipboard receives exported lists. Defaults to the system clipboard.
	Clipboard func(string) error
	// Interactive runs the full-screen list for "open".
	Interactive func(s *shoplist.Session, theme tui.Theme) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(args []string) int {
	if r.Clipboard == nil {
		r.Clipboard = clipboard.WriteAll
	}
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	if r.Interactive == nil {
		r.Interactive = func(s *shoplist.Session, theme tui.Theme) error {
			return tui.Run(s, tui.WithTheme(theme), tui.WithLogger(r.Logger))
		}
	}

	if len(args) == 0 {
		args = []string{"open"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return ExitOK
	case "shops":
		return r.doShops()
	case "use":
		if len(a) == 0 {
			return r.usage("use <shop...>")
		}
		return r.doUse(strings.Join(a, " "))
	case "ls":
		fs := flag.NewFlagSet("ls", flag.ContinueOnError)
		fs.SetOutput(r.Err)
		group := fs.Bool("group", false, "group articles by aisle")
		if err := fs.Parse(a); err != nil {
			return ExitUsage
		}
		return r.withSession(func(s *shoplist.Session) int { return r.doList(s, *group) })
	case "open":
		return r.withSession(func(s *shoplist.Session) int {
			if err := r.Interactive(s, tui.ThemeFor(r.Config.Theme)); err != nil {
				r.fail("open: " + err.Error())
				return ExitError
			}
			return ExitOK
		})
	case "add":
		return r.doAdd(a)
	case "rm":
		idx, code := r.indexes("rm", a, 1)
		if code != ExitOK {
			return code
		}
		return r.withSession(func(s *shoplist.Session) int { return r.doRemove(s, idx) })
	case "clear":
		return r.withSession(func(s *shoplist.Session) int { return r.doRemove(s, nil) })
	case "done":
		idx, code := r.indexes("done", a, 1)
		if code != ExitOK {
			return code
		}
		return r.withSession(func(s *shoplist.Session) int { return r.doToggle(s, idx) })
	case "mv":
		if len(a) != 2 {
			return r.usage("mv <from> <to>")
		}
		idx, code := r.indexes("mv", a, 2)
		if code != ExitOK {
			return code
		}
		return r.withSession(func(s *shoplist.Session) int { return r.doMove(s, idx[0], idx[1]) })
	case "sort":
		return r.withSession(func(s *shoplist.Session) int {
			s.List.SortByName()
			r.ok("sorted " + s.Shop.Name + " by name")
			return ExitOK
		})
	case "copy":
		idx, code := r.indexes("copy", a, 0)
		if code != ExitOK {
			return code
		}
		return r.withSession(func(s *shoplist.Session) int { return r.doCopy(s, idx) })
	case "backup":
		switch {
		case len(a) == 0:
			return r.doBackup()
		case len(a) == 1 && a[0] == "ls":
			return r.doBackupList()
		}
		return r.usage("backup [ls]")
	case "restore":
		if len(a) != 1 {
			return r.usage("restore <file>")
		}
		return r.doRestore(a[0])
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.Err)
	r.PrintHelp()
	return ExitUsage
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.Out, `shoplist - shopping lists per shop

Usage:
  shoplist [-shop <name>] <subcommand> [args]

Subcommands:
  open                        Interactive list (default)
  shops                       List shops, * marks the current one
  use <shop...>               Switch to a shop, creating it if needed
  ls [-group]                 Show the current shop's list, optionally by aisle
  add [-n amount] [-m measure] <name...>
                              Add an article at the end of the list
  rm <index...>               Remove articles at 1-based indexes
  clear                       Remove every article
  done <index...>             Toggle the done strike
  mv <from> <to>              Move an article
  sort                        Sort the list by name
  copy [index...]             Copy the list (or some articles) to the clipboard
  backup [ls]                 Write an encrypted snapshot, or list snapshots
  restore <file>              Replace the database with a snapshot

Examples:
  shoplist use Colruyt
  shoplist add -n 2 -m L Milk
  shoplist rm 1 3
`)
}

func (r *Runner) ok(msg string) {
	fmt.Fprintln(r.Out, successStyle.Render("✔ "+msg))
}

func (r *Runner) fail(msg string) {
	fmt.Fprintln(r.Err, errorStyle.Render("✖ "+msg))
}

func (r *Runner) usage(u string) int {
	r.fail("usage: shoplist " + u)
	return ExitUsage
}

// indexes parses 1-based indexes; min is the number required.
func (r *Runner) indexes(cmd string, args []string, min int) ([]int, int) {
	if len(args) < min {
		return nil, r.usage(cmd + " <index...>")
	}
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			r.fail(cmd + ": not a number: " + a)
			return nil, ExitUsage
		}
		out = append(out, n)
	}
	return out, ExitOK
}

// checkIndexes converts 1-based indexes into list positions.
func (r *Runner) checkIndexes(s *shoplist.Session, idx []int) ([]int, bool) {
	out := make([]int, len(idx))
	for i, n := range idx {
		if n < 1 || n > s.List.Len() {
			r.fail(fmt.Sprintf("index out of range: have %d, got %d", s.List.Len(), n))
			fmt.Fprintln(r.Err, mutedStyle.Render("Hint: run `shoplist ls` to see valid indexes"))
			return nil, false
		}
		out[i] = n - 1
	}
	return out, true
}

func (r *Runner) openDB() (*store.ShopStore, *store.SettingsStore, func() error, error) {
	db, err := database.Open(r.Config.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	shops := store.NewShopStore(db)
	if err := shops.EnsureShops(r.Config.Shops); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return shops, store.NewSettingsStore(db), db.Close, nil
}

// currentShop picks -shop, then the stored current shop, then the first
// configured shop.
func (r *Runner) currentShop(settings *store.SettingsStore, shops *store.ShopStore) (string, error) {
	if r.Shop != "" {
		return r.Shop, nil
	}
	name, err := settings.CurrentShop()
	if err != nil || name != "" {
		return name, err
	}
	if len(r.Config.Shops) > 0 {
		return r.Config.Shops[0], nil
	}
	all, err := shops.List()
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", errors.New("no shops: run `shoplist use <shop>`")
	}
	return all[0].Name, nil
}

// withSession opens the current shop's list, runs fn and flushes the list.
func (r *Runner) withSession(fn func(*shoplist.Session) int) int {
	db, err := database.Open(r.Config.DBPath)
	if err != nil {
		r.fail("open database: " + err.Error())
		return ExitError
	}
	shops := store.NewShopStore(db)
	name, err := func() (string, error) {
		if err := shops.EnsureShops(r.Config.Shops); err != nil {
			return "", err
		}
		return r.currentShop(store.NewSettingsStore(db), shops)
	}()
	if err != nil {
		db.Close()
		r.fail(err.Error())
		return ExitError
	}

	s, err := shoplist.NewSession(db, name, nil, r.Logger)
	if err != nil {
		db.Close()
		r.fail(err.Error())
		return ExitError
	}

	code := fn(s)
	if err := s.Close(); err != nil {
		r.fail("save: " + err.Error())
		return ExitError
	}
	return code
}

func (r *Runner) doShops() int {
	shops, settings, closeDB, err := r.openDB()
	if err != nil {
		r.fail("open database: " + err.Error())
		return ExitError
	}
	defer closeDB()

	current, err := r.currentShop(settings, shops)
	if err != nil {
		r.fail(err.Error())
		return ExitError
	}
	all, err := shops.List()
	if err != nil {
		r.fail(err.Error())
		return ExitError
	}
	for _, s := range all {
		mark := " "
		if s.Name == current {
			mark = "*"
		}
		fmt.Fprintf(r.Out, "%s %s\n", mark, s.Name)
	}
	return ExitOK
}

func (r *Runner) doUse(name string) int {
	name = strings.TrimSpace(name)
	shops, settings, closeDB, err := r.openDB()
	if err != nil {
		r.fail("open database: " + err.Error())
		return ExitError
	}
	defer closeDB()

	shop, err := shops.GetOrCreate(name)
	if errors.Is(err, store.ErrEmptyShopName) {
		return r.usage("use <shop...>")
	}
	if err != nil {
		r.fail(err.Error())
		return ExitError
	}
	if err := settings.SetCurrentShop(shop.Name); err != nil {
		r.fail(err.Error())
		return ExitError
	}
	r.ok("using " + shop.Name)
	return ExitOK
}

func (r *Runner) doList(s *shoplist.Session, group bool) int {
	articles := s.List.Articles()
	done := 0
	for _, a := range articles {
		if a.Strikethrough {
			done++
		}
	}

	lines := []string{
		fmt.Sprintf("%s  %s %d/%d", titleStyle.Render(s.Shop.Name), successStyle.Render("✔"), done, len(articles)),
		"",
	}
	if len(articles) == 0 {
		lines = append(lines, mutedStyle.Render("Empty. Add with `shoplist add Milk`"))
	}
	if group {
		for _, g := range shoplist.GroupByAisle(s.List) {
			lines = append(lines, titleStyle.Render(g.Aisle))
			for j, a := range g.Articles {
				lines = append(lines, articleLine(g.Index[j], a))
			}
		}
	} else {
		for i, a := range articles {
			lines = append(lines, articleLine(i, a))
		}
	}
	fmt.Fprintln(r.Out, panelStyle.Render(strings.Join(lines, "\n")))
	return ExitOK
}

func articleLine(i int, a model.Article) string {
	box, text := "[ ]", a.String()
	if a.Strikethrough {
		box, text = "[x]", mutedStyle.Strikethrough(true).Render(text)
	}
	return fmt.Sprintf("%2d. %s %s", i+1, box, text)
}

func (r *Runner) doAdd(args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(r.Err)
	amount := fs.String("n", "1", "amount")
	measure := fs.String("m", "", "measure, e.g. kg or L")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	name := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(name) == "" {
		return r.usage("add [-n amount] [-m measure] <name...>")
	}

	return r.withSession(func(s *shoplist.Session) int {
		a, _, err := s.List.AddInput(name, *amount, *measure)
		if err != nil {
			r.fail("add: " + err.Error())
			return ExitError
		}
		r.ok("added " + a.String() + " to " + s.Shop.Name)
		return ExitOK
	})
}

// doRemove removes the articles at idx, or everything when idx is empty.
func (r *Runner) doRemove(s *shoplist.Session, idx []int) int {
	var (
		rem shoplist.Removal
		err error
	)
	if len(idx) == 1 {
		pos, ok := r.checkIndexes(s, idx)
		if !ok {
			return ExitUsage
		}
		rem, err = shoplist.RemoveOne(s.List, pos[0])
	} else {
		if ok := r.selectIndexes(s, idx); !ok {
			return ExitUsage
		}
		rem, err = shoplist.RemoveSelectedOrAll(s.List, s.Selection)
	}
	if err != nil {
		if !rem.Empty() {
			r.ok(rem.Message(s.Shop.Name))
		}
		r.fail("rm: " + err.Error())
		return ExitError
	}
	r.ok(rem.Message(s.Shop.Name))
	return ExitOK
}

func (r *Runner) selectIndexes(s *shoplist.Session, idx []int) bool {
	pos, ok := r.checkIndexes(s, idx)
	if !ok {
		return false
	}
	for _, p := range pos {
		a, _ := s.List.At(p)
		if !s.Selection.Contains(a.ID) {
			s.Selection.Toggle(a.ID)
		}
	}
	return true
}

func (r *Runner) doToggle(s *shoplist.Session, idx []int) int {
	pos, ok := r.checkIndexes(s, idx)
	if !ok {
		return ExitUsage
	}
	ids := make([]int64, 0, len(pos))
	for _, p := range pos {
		a, _ := s.List.At(p)
		ids = append(ids, a.ID)
	}
	if err := s.List.ToggleStrikethrough(ids); err != nil {
		r.fail("done: " + err.Error())
		return ExitError
	}
	r.ok("toggled")
	return ExitOK
}

func (r *Runner) doMove(s *shoplist.Session, from, to int) int {
	pos, ok := r.checkIndexes(s, []int{from, to})
	if !ok {
		return ExitUsage
	}
	if err := s.List.Move(pos[0], pos[1]); err != nil {
		r.fail("mv: " + err.Error())
		return ExitError
	}
	r.ok("moved")
	return ExitOK
}

func (r *Runner) doCopy(s *shoplist.Session, idx []int) int {
	if !r.selectIndexes(s, idx) {
		return ExitUsage
	}
	text, ok := shoplist.ExportText(s.List, s.Selection)
	s.Selection.Clear()
	if !ok {
		r.ok(shoplist.ExportMessage(0))
		return ExitOK
	}
	if err := r.Clipboard(text + "\n"); err != nil {
		r.fail("copy: " + err.Error())
		return ExitError
	}
	r.ok(shoplist.ExportMessage(strings.Count(text, "\n") + 1))
	return ExitOK
}

func (r *Runner) passphrase() (string, bool) {
	if r.Config.BackupPassphrase == "" {
		r.fail("set SHOPLIST_BACKUP_PASSPHRASE to encrypt backups")
		return "", false
	}
	return r.Config.BackupPassphrase, true
}

func (r *Runner) doBackup() int {
	pass, ok := r.passphrase()
	if !ok {
		return ExitUsage
	}
	db, err := database.Open(r.Config.DBPath)
	if err != nil {
		r.fail("open database: " + err.Error())
		return ExitError
	}
	defer db.Close()

	path, err := backup.Create(context.Background(), db, r.Config.BackupDir, pass)
	if err != nil {
		r.fail(err.Error())
		return ExitError
	}
	r.ok("wrote " + path)
	return ExitOK
}

func (r *Runner) doBackupList() int {
	files, err := backup.List(r.Config.BackupDir)
	if err != nil {
		r.fail(err.Error())
		return ExitError
	}
	if len(files) == 0 {
		fmt.Fprintln(r.Out, mutedStyle.Render("no backups in "+r.Config.BackupDir))
	}
	for _, f := range files {
		fmt.Fprintln(r.Out, filepath.Base(f))
	}
	return ExitOK
}

func (r *Runner) doRestore(src string) int {
	pass, ok := r.passphrase()
	if !ok {
		return ExitUsage
	}
	if !strings.ContainsRune(src, filepath.Separator) {
		src = filepath.Join(r.Config.BackupDir, src)
	}
	if err := backup.Restore(src, r.Config.DBPath, pass); err != nil {
		r.fail(err.Error())
		return ExitError
	}
	r.ok("restored " + filepath.Base(src))
	return ExitOK
}
