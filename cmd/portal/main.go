// Package main runs the interactive terminal front-end for the campus event
// portal. It renders read-only view models and forwards user intents to the
// app controller; all state transitions live in internal packages.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/campus-plates/portal/config"
	"github.com/campus-plates/portal/internal/accounts"
	"github.com/campus-plates/portal/internal/app"
	"github.com/campus-plates/portal/internal/events"
	"github.com/campus-plates/portal/internal/models"
	"github.com/campus-plates/portal/internal/session"
	"github.com/campus-plates/portal/internal/storage"
	"github.com/campus-plates/portal/internal/view"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	store, err := storage.Open(cfg.Storage.Path, logger)
	if err != nil {
		logger.Fatal("open profile store", zap.Error(err))
	}
	defer store.Close()

	accountStore := accounts.NewStore(store, logger)
	sess := session.NewController(accountStore, store, logger)
	client := events.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSec)*time.Second, logger)
	repo := events.NewRepository(client, logger)
	ctrl := app.New(sess, repo, logger)

	ctx := context.Background()
	ctrl.Init(ctx)

	ui := &ui{ctrl: ctrl, in: bufio.NewScanner(os.Stdin)}
	ui.run(ctx)
}

type ui struct {
	ctrl *app.Controller
	in   *bufio.Scanner
}

func (u *ui) run(ctx context.Context) {
	fmt.Println("Campus Plates — type 'help' for commands")
	u.renderTab()
	for {
		fmt.Print("> ")
		if !u.in.Scan() {
			return
		}
		line := strings.TrimSpace(u.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			u.help()
		case "quit", "exit":
			return
		case "active":
			u.ctrl.SelectTab(view.TabActiveEvents)
			u.renderTab()
		case "completed":
			u.ctrl.SelectTab(view.TabCompleted)
			u.renderTab()
		case "profile":
			u.ctrl.SelectTab(view.TabProfile)
			u.renderProfile()
		case "refresh":
			u.ctrl.Init(ctx)
			u.renderTab()
		case "view":
			u.viewDetail(ctx, args)
		case "close":
			u.ctrl.CloseDetail()
		case "role":
			u.selectRole(args)
		case "login":
			u.login()
		case "register":
			u.register()
		case "logout":
			u.ctrl.Logout()
			fmt.Println("Signed out.")
			u.renderTab()
		case "create":
			u.create(ctx)
		case "complete":
			u.complete(ctx, args)
		case "delete":
			u.delete(ctx, args)
		default:
			fmt.Println("Unknown command; type 'help'.")
		}
	}
}

func (u *ui) help() {
	fmt.Println(`Tabs:      active | completed | profile
Events:    view <id> | close | refresh
Faculty:   create | complete <id> | delete <id>
Account:   role faculty|student | register | login | logout
Other:     help | quit`)
}

func (u *ui) renderTab() {
	tab := u.ctrl.View().ActiveTab()
	if tab == view.TabProfile {
		u.renderProfile()
		return
	}
	fmt.Printf("-- %s --\n", tab)
	list := u.ctrl.VisibleEvents()
	if len(list) == 0 {
		fmt.Println("(no events)")
		return
	}
	for _, ev := range list {
		u.renderCard(ev)
	}
}

func (u *ui) renderCard(ev models.Event) {
	fmt.Printf("[%d] %s (%s)\n", ev.ID, ev.Title, ev.StatusLabel)
	fmt.Printf("     %s | %s | Est. Meals Available: %d\n", ev.DisplayLocation(), ev.Time, ev.Meals)
}

func (u *ui) renderProfile() {
	sess := u.ctrl.Session().Session()
	if !sess.SignedIn() {
		fmt.Printf("Signed out. Auth role: %s. Use 'register' / 'login'.\n", u.ctrl.Session().AuthRole())
		if msg := u.ctrl.Session().Message(); msg != "" {
			fmt.Println(msg)
		}
		return
	}
	fmt.Printf("Signed in as %s (%s)\n", sess.Username, sess.Role)
}

func (u *ui) viewDetail(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: view <id>")
		return
	}
	if err := u.ctrl.OpenDetail(ctx, id); err != nil {
		fmt.Println("Could not load that event.")
		return
	}
	ev := u.ctrl.View().Detail()
	if ev == nil {
		return
	}
	u.renderCard(*ev)
	fmt.Printf("     %s\n", ev.Description)
	if ev.OrganizationName != "" {
		fmt.Printf("     Hosted by %s\n", ev.OrganizationName)
	}
}

func (u *ui) selectRole(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: role faculty|student")
		return
	}
	switch strings.ToLower(args[0]) {
	case "faculty":
		u.ctrl.Session().SelectAuthRole(models.RoleFaculty)
	case "student":
		u.ctrl.Session().SelectAuthRole(models.RoleStudent)
	default:
		fmt.Println("usage: role faculty|student")
		return
	}
	fmt.Printf("Auth role: %s\n", u.ctrl.Session().AuthRole())
}

func (u *ui) login() {
	username := u.prompt("Username: ")
	password := u.prompt("Password: ")
	if err := u.ctrl.Session().Login(username, password); err != nil {
		fmt.Println(u.ctrl.Session().Message())
		return
	}
	fmt.Printf("Welcome, %s.\n", username)
}

func (u *ui) register() {
	username := u.prompt("Username: ")
	password := u.prompt("Password: ")
	_ = u.ctrl.Session().Register(username, password)
	fmt.Println(u.ctrl.Session().Message())
}

func (u *ui) create(ctx context.Context) {
	if !u.ctrl.OpenCreate() {
		fmt.Println("Creating events requires a faculty sign-in.")
		return
	}
	orgs := u.ctrl.Organizations()
	fmt.Println("Organizations:")
	for _, org := range orgs {
		fmt.Printf("  [%d] %s\n", org.ID, org.Name)
	}

	draft := events.Draft{
		Title:        u.prompt("Title: "),
		Description:  u.prompt("Description: "),
		LocationName: u.prompt("Location: "),
	}
	if id, err := strconv.ParseInt(u.prompt("Organization id: "), 10, 64); err == nil {
		draft.OrganizationID = id
	}
	if t, err := time.Parse("2006-01-02 15:04", u.prompt("Starts at (YYYY-MM-DD HH:MM): ")); err == nil {
		draft.StartsAt = t
	}
	if n, err := strconv.Atoi(u.prompt("Estimated meals: ")); err == nil {
		draft.Meals = &n
	}

	created, err := u.ctrl.SubmitCreate(ctx, draft)
	if err != nil {
		fmt.Printf("Could not create event: %v\n", err)
		return
	}
	if created != nil {
		fmt.Printf("Created event %d.\n", created.ID)
		u.renderTab()
	}
}

func (u *ui) complete(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: complete <id>")
		return
	}
	if err := u.ctrl.MarkCompleted(ctx, id); err != nil {
		fmt.Println("Could not mark that event completed.")
		return
	}
	u.renderTab()
}

func (u *ui) delete(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: delete <id>")
		return
	}
	confirm := func() bool {
		return strings.EqualFold(u.prompt(fmt.Sprintf("Delete event %d? (y/n): ", id)), "y")
	}
	if err := u.ctrl.DeleteEvent(ctx, id, confirm); err != nil {
		fmt.Println("Could not delete that event.")
		return
	}
	u.renderTab()
}

func (u *ui) prompt(label string) string {
	fmt.Print(label)
	if !u.in.Scan() {
		return ""
	}
	return strings.TrimSpace(u.in.Text())
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// newLogger builds a console logger kept at warn level so log lines do not
// interleave with the interactive prompt.
func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
