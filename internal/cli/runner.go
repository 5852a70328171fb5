package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/bootcamp/internal/model"
	"github.com/idilsaglam/bootcamp/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done

	Client   *Client
	Creds    Credentials
	EnvToken string // token taken from BOOTCAMP_TOKEN, if any

	Out io.Writer // defaults to stdout
	Err io.Writer // defaults to stderr
}

type runner struct {
	ctx context.Context
	Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	r := &runner{ctx: ctx, Options: opt}

	if len(args) == 0 {
		PrintHelp(r.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.Out)
		return 0

	case "ls":
		for _, f := range a {
			if f == "--group" || f == "-g" {
				r.Group = true
			}
		}
		return r.list()

	case "add":
		title := strings.TrimSpace(strings.Join(a, " "))
		if title == "" {
			ui.Fail(r.Err, "usage: todo add <title...>")
			return 2
		}
		return r.add(title)

	case "done", "rm", "show":
		if len(a) != 1 {
			ui.Fail(r.Err, fmt.Sprintf("usage: todo %s <id>", cmd))
			return 2
		}
		id, err := strconv.Atoi(a[0])
		if err != nil || id < 1 {
			ui.Fail(r.Err, cmd+": not a valid id: "+a[0])
			return 2
		}
		switch cmd {
		case "done":
			return r.toggle(id)
		case "rm":
			return r.remove(id)
		default:
			return r.show(id)
		}

	case "auth":
		return r.auth(a)
	}

	ui.Fail(r.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.Err)
	PrintHelp(r.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - terminal client for the task API

Usage:
  bootcamp todo <subcommand> [args]

Subcommands:
  add <title...>     Create a task (title can be multiple words)
  ls [--group]       List tasks, optionally grouped by pending/done
  show <id>          Show one task
  done <id>          Toggle completed for a task
  rm <id>            Delete a task
  auth login <token> [ttl]
                     Save an API token, optionally expiring after ttl (e.g. 8h)
  auth logout        Forget the saved token
  auth status        Show where the token comes from

Environment:
  BOOTCAMP_API_URL   API base URL (default http://localhost:3000)
  BOOTCAMP_TOKEN     API token, overrides the saved one

Examples:
  bootcamp todo add "Buy milk"
  bootcamp todo ls --group
  bootcamp todo done 2
  bootcamp todo rm 3
`)
}

// -------------- subcommand impls ----------------

// failAPI reports err and maps it to an exit code.
func (r *runner) failAPI(what string, err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == 404 {
		ui.Fail(r.Err, what+": "+apiErr.Message)
		fmt.Fprintln(r.Err, ui.C(ui.Current().Muted, "Hint: run `bootcamp todo ls` to see valid ids"))
		return 1
	}
	if errors.As(err, &apiErr) && apiErr.Status == 401 {
		ui.Fail(r.Err, what+": unauthorized")
		fmt.Fprintln(r.Err, ui.C(ui.Current().Muted, "Hint: run `bootcamp todo auth login <token>`"))
		return 1
	}
	ui.Fail(r.Err, what+": "+err.Error())
	return 1
}

func (r *runner) list() int {
	tasks, err := r.Client.List(r.ctx)
	if err != nil {
		return r.failAPI("list", err)
	}

	// Header + progress
	d, p := stats(tasks)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Tasks"),
		ui.C(ui.Current().Success, ui.Current().SymDone), d,
		ui.C(ui.Current().Pending, ui.Current().SymUnchecked), p,
		ui.C(ui.Current().Accent, "Total"), len(tasks),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if r.Group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `bootcamp todo add \"Buy milk\"`"))
	ui.Panel(r.Out, lines)
	return 0
}

func (r *runner) add(title string) int {
	t, err := r.Client.Create(r.ctx, model.TaskInput{Title: title})
	if err != nil {
		return r.failAPI("add", err)
	}
	ui.OK(r.Out, fmt.Sprintf("added #%d", t.ID))
	return 0
}

func (r *runner) toggle(id int) int {
	t, err := r.Client.Get(r.ctx, id)
	if err != nil {
		return r.failAPI("done", err)
	}
	completed := !t.Completed
	if _, err := r.Client.Patch(r.ctx, id, model.TaskPatch{Completed: &completed}); err != nil {
		return r.failAPI("done", err)
	}
	if completed {
		ui.OK(r.Out, fmt.Sprintf("#%d done", id))
	} else {
		ui.OK(r.Out, fmt.Sprintf("#%d reopened", id))
	}
	return 0
}

func (r *runner) remove(id int) int {
	if err := r.Client.Delete(r.ctx, id); err != nil {
		return r.failAPI("rm", err)
	}
	ui.OK(r.Out, fmt.Sprintf("removed #%d", id))
	return 0
}

func (r *runner) show(id int) int {
	t, err := r.Client.Get(r.ctx, id)
	if err != nil {
		return r.failAPI("show", err)
	}
	status := ui.C(ui.Current().Pending, "pending")
	if t.Completed {
		status = ui.C(ui.Current().Success, "done")
	}
	ui.Panel(r.Out, []string{
		ui.C(ui.Current().Title, fmt.Sprintf("#%d %s", t.ID, t.Title)),
		"status:  " + status,
		ui.C(ui.Current().Muted, "created: "+t.CreatedAt.Local().Format("2006-01-02 15:04")),
		ui.C(ui.Current().Muted, "updated: "+t.UpdatedAt.Local().Format("2006-01-02 15:04")),
	})
	return 0
}

func (r *runner) auth(a []string) int {
	if len(a) == 0 {
		ui.Fail(r.Err, "usage: todo auth login <token>|logout|status")
		return 2
	}
	switch a[0] {
	case "login":
		if len(a) < 2 || len(a) > 3 {
			ui.Fail(r.Err, "usage: todo auth login <token> [ttl]")
			return 2
		}
		var expires *time.Time
		if len(a) == 3 {
			ttl, err := time.ParseDuration(a[2])
			if err != nil || ttl <= 0 {
				ui.Fail(r.Err, "login: ttl must be a positive duration like 8h, got "+a[2])
				return 2
			}
			at := time.Now().Add(ttl)
			expires = &at
		}
		if err := r.Creds.Save(a[1], expires); err != nil {
			ui.Fail(r.Err, "login: "+err.Error())
			return 1
		}
		ui.OK(r.Out, "token saved")
		return 0

	case "logout":
		if err := r.Creds.Delete(); err != nil {
			ui.Fail(r.Err, "logout: "+err.Error())
			return 1
		}
		ui.OK(r.Out, "logged out")
		return 0

	case "status":
		ti, err := r.Creds.Token(r.EnvToken)
		if err != nil {
			ui.Fail(r.Err, "status: "+err.Error())
			return 1
		}
		if ti == nil {
			fmt.Fprintln(r.Out, ui.C(ui.Current().Muted, "not logged in"))
			return 0
		}
		fmt.Fprintf(r.Out, "logged in (token from %s)\n", ti.Source)
		if ti.ExpiresAt != nil {
			fmt.Fprintln(r.Out, ui.C(ui.Current().Muted, "expires: "+ti.ExpiresAt.Local().Format("2006-01-02 15:04")))
		}
		return 0
	}
	ui.Fail(r.Err, "unknown auth subcommand: "+a[0])
	return 2
}

// -------------- rendering helpers --------------

func stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{ui.C(ui.Current().Muted, "no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		idx := fmt.Sprintf("%3d.", t.ID)
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		if t.Completed {
			box, color = ui.Current().BoxChecked, ui.Current().Success
		}
		title := t.Title
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C("\033[2m", idx), ui.C(color, box), title))
	}
	return out
}

func groupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
