package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"
	"golang.org/x/oauth2"

	"pawsched/internal/config"
	"pawsched/internal/event"
	"pawsched/internal/export"
	"pawsched/internal/gcal"
	"pawsched/internal/ics"
	"pawsched/internal/notify"
	"pawsched/internal/stats"
	"pawsched/internal/store"
	"pawsched/internal/template"
	"pawsched/internal/tui"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pawsched",
	Short: "Scheduling admin for a pet-sitting business",
	Long:  "pawsched keeps a local calendar of pet-sitting appointments, classifies work vs. personal events, and produces grouped text/CSV reports.",
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the event list report",
	RunE:  runList,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export events as text or CSV",
	RunE:  runExport,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workload and revenue summary",
	RunE:  runStats,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Browse the month calendar",
	RunE:  runCalendar,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull events from Google Calendar",
	RunE:  runSync,
}

var importCmd = &cobra.Command{
	Use:   "import <url-or-file>",
	Short: "Import events from an ICS feed or file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show (and optionally notify about) upcoming appointments",
	RunE:  runUpcoming,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage appointment templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE:  runTemplateList,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateAdd,
}

var templateApplyCmd = &cobra.Command{
	Use:   "apply <name>",
	Short: "Create events from a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateApply,
}

var templateRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateRm,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	addCmd.Flags().String("at", "", "Start time (natural language, e.g. 'tomorrow at 10am')")
	addCmd.Flags().Int("minutes", 30, "Duration in minutes")
	addCmd.Flags().String("location", "", "Location")
	addCmd.Flags().String("notes", "", "Notes")
	addCmd.Flags().String("type", "other", "Event type (dropin|walk|overnight|meet-greet|other)")

	for _, c := range []*cobra.Command{listCmd, exportCmd} {
		c.Flags().String("from", "", "Range start (natural language or YYYY-MM-DD)")
		c.Flags().String("to", "", "Range end (inclusive)")
		c.Flags().String("group-by", "", "Dash-joined group levels (date|week|month|client|service) or 'none'")
		c.Flags().String("sort", "", "Comma-separated sort levels, e.g. 'client,time:desc'")
		c.Flags().Bool("desc", false, "Descending group order")
		c.Flags().Bool("all", false, "Include personal events")
		c.Flags().String("search", "", "Substring filter on title")
		c.Flags().Bool("time", true, "Include times")
		c.Flags().Bool("location", false, "Include locations")
	}
	exportCmd.Flags().String("format", "text", "Output format (text|csv)")
	exportCmd.Flags().String("out", "", "Write to file instead of stdout")

	statsCmd.Flags().String("from", "", "Range start")
	statsCmd.Flags().String("to", "", "Range end (inclusive)")

	syncCmd.Flags().Bool("auth", false, "Run the OAuth authorization flow")

	upcomingCmd.Flags().Bool("notify", false, "Send desktop notifications")
	upcomingCmd.Flags().Int("hours", 24, "Look-ahead window in hours")

	templateAddCmd.Flags().String("title", "{client} 30", "Title pattern ({client} placeholder)")
	templateAddCmd.Flags().Int("minutes", 30, "Duration in minutes")
	templateAddCmd.Flags().String("type", "dropin", "Event type")
	templateAddCmd.Flags().String("location", "", "Location")
	templateAddCmd.Flags().String("rrule", "", "Recurrence rule (e.g. FREQ=WEEKLY;BYDAY=MO,WE,FR)")

	templateApplyCmd.Flags().String("client", "", "Client/pet name")
	templateApplyCmd.Flags().String("at", "", "First occurrence (natural language)")
	templateApplyCmd.Flags().String("until", "", "Expand recurrences through this date")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateApplyCmd)
	templateCmd.AddCommand(templateRmCmd)

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseWhen(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(s, time.Now(), naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

func parseRange(cmd *cobra.Command) (time.Time, time.Time, error) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	from, err := parseWhen(fromStr, time.Time{})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseWhen(toStr, time.Time{})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("range end %s is before start %s", toStr, fromStr)
	}
	return from, to, nil
}

func exportOptions(cmd *cobra.Command, cfg *config.Config) (export.Options, error) {
	from, to, err := parseRange(cmd)
	if err != nil {
		return export.Options{}, err
	}

	groupBy, _ := cmd.Flags().GetString("group-by")
	if !cmd.Flags().Changed("group-by") {
		groupBy = cfg.Export.GroupBy
	}
	sortStr, _ := cmd.Flags().GetString("sort")
	if !cmd.Flags().Changed("sort") {
		sortStr = cfg.Export.EventSort
	}
	all, _ := cmd.Flags().GetBool("all")
	desc, _ := cmd.Flags().GetBool("desc")
	search, _ := cmd.Flags().GetString("search")
	includeTime, _ := cmd.Flags().GetBool("time")
	includeLocation, _ := cmd.Flags().GetBool("location")

	return export.Options{
		StartDate:       from,
		EndDate:         to,
		IncludeTime:     includeTime,
		IncludeLocation: includeLocation || cfg.Export.IncludeLocation,
		GroupBy:         export.ParseGroupBy(groupBy),
		GroupDesc:       desc,
		EventSort:       export.ParseEventSort(sortStr),
		WorkOnly:        cfg.Export.WorkOnly && !all,
		SearchTerm:      search,
	}, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	atStr, _ := cmd.Flags().GetString("at")
	start, err := parseWhen(atStr, time.Now())
	if err != nil {
		return err
	}
	minutes, _ := cmd.Flags().GetInt("minutes")
	location, _ := cmd.Flags().GetString("location")
	notes, _ := cmd.Flags().GetString("notes")
	typ, _ := cmd.Flags().GetString("type")

	e := event.Event{
		ID:       uuid.NewString(),
		Title:    args[0],
		Start:    start,
		End:      start.Add(time.Duration(minutes) * time.Minute),
		Location: location,
		Notes:    notes,
		Type:     event.Type(typ),
	}
	if err := db.InsertEvent(&e); err != nil {
		return err
	}

	kind := "personal"
	if e.IsWork() {
		kind = "work"
	}
	fmt.Printf("Added %s (%s, %s)\n", e.Title, event.ServiceType(e), kind)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	return runReport(cmd, "text", "")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	return runReport(cmd, format, out)
}

func runReport(cmd *cobra.Command, format, outPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	events, err := db.AllEvents()
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	opts, err := exportOptions(cmd, cfg)
	if err != nil {
		return err
	}

	var output string
	switch format {
	case "text":
		output = export.Text(events, opts)
	case "csv":
		output = export.CSV(events, opts)
	default:
		return fmt.Errorf("unknown format %q (want text or csv)", format)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(output), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("Wrote %s\n", outPath)
		return nil
	}
	fmt.Println(output)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}
	if from.IsZero() {
		from = event.Midnight(time.Now()).AddDate(0, -1, 0)
	}
	if to.IsZero() {
		to = event.Midnight(time.Now())
	}

	events, err := db.AllEvents()
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	summary := stats.Compute(events, from, to, cfg.Rates)
	fmt.Print(stats.Render(summary))
	return nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	loader := func(from, to time.Time) ([]event.Event, error) {
		return db.EventsInRange(from, to)
	}

	app := tui.NewApp(loader, time.Now())
	if _, err := tea.NewProgram(app).Run(); err != nil {
		return fmt.Errorf("running calendar view: %w", err)
	}
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Calendar.ClientID == "" {
		return fmt.Errorf("google client ID not configured, run 'pawsched config' to set it up")
	}

	logger := newLogger()
	oauthCfg := gcal.OAuthConfig(cfg.Calendar.ClientID, cfg.Calendar.ClientSecret)
	ctx := context.Background()

	if auth, _ := cmd.Flags().GetBool("auth"); auth {
		fmt.Println("Open this URL in your browser and authorize access:")
		fmt.Println()
		fmt.Println("  " + oauthCfg.AuthCodeURL("state", oauth2.AccessTypeOffline))
		fmt.Println()
		fmt.Print("Paste the authorization code: ")

		reader := bufio.NewReader(os.Stdin)
		code, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading code: %w", err)
		}
		if _, err := gcal.Authorize(ctx, oauthCfg, strings.TrimSpace(code)); err != nil {
			return err
		}
		fmt.Println("Authorized.")
		return nil
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	client, err := gcal.NewClient(ctx, oauthCfg, cfg.Calendar.GoogleID, logger)
	if err != nil {
		return err
	}

	days := cfg.Calendar.SyncDays
	if days <= 0 {
		days = 90
	}
	from := event.Midnight(time.Now()).AddDate(0, 0, -days)
	to := event.Midnight(time.Now()).AddDate(0, 0, days)

	events, err := client.Fetch(ctx, from, to)
	if err != nil {
		return err
	}

	for i := range events {
		if err := db.UpsertEvent(&events[i], "gcal"); err != nil {
			return err
		}
	}
	if err := db.SetState("last_sync", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	fmt.Printf("Synced %d events (%s to %s)\n", len(events),
		from.Format("Jan 2, 2006"), to.Format("Jan 2, 2006"))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	from := event.Midnight(time.Now()).AddDate(-1, 0, 0)
	to := event.Midnight(time.Now()).AddDate(1, 0, 0)

	events, err := ics.Fetch(context.Background(), args[0], from, to, newLogger())
	if err != nil {
		return err
	}

	for i := range events {
		if err := db.UpsertEvent(&events[i], "ics"); err != nil {
			return err
		}
	}

	fmt.Printf("Imported %d events from %s\n", len(events), args[0])
	return nil
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	hours, _ := cmd.Flags().GetInt("hours")
	now := time.Now()

	events, err := db.EventsInRange(now, now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	due := notify.Due(events, now, time.Duration(hours)*time.Hour)
	if len(due) == 0 {
		fmt.Println("No upcoming appointments.")
		return nil
	}

	doNotify, _ := cmd.Flags().GetBool("notify")
	for _, e := range due {
		msg := notify.Upcoming(e)
		fmt.Println("  " + msg)
		if doNotify && cfg.Notify.Enabled {
			if err := notify.Send(cfg.Business.Name, msg); err != nil {
				fmt.Printf("Warning: %v\n", err)
			}
		}
	}
	return nil
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	templates, err := db.ListTemplates()
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Println("No templates defined.")
		return nil
	}

	for _, t := range templates {
		rule := t.RRule
		if rule == "" {
			rule = "one-off"
		}
		fmt.Printf("  %-20s %-20s %3dmin  %s\n", t.Name, t.TitlePattern, t.DurationMinutes, rule)
	}
	return nil
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	title, _ := cmd.Flags().GetString("title")
	minutes, _ := cmd.Flags().GetInt("minutes")
	typ, _ := cmd.Flags().GetString("type")
	location, _ := cmd.Flags().GetString("location")
	rrule, _ := cmd.Flags().GetString("rrule")

	tpl := store.Template{
		Name:            args[0],
		TitlePattern:    title,
		Type:            typ,
		DurationMinutes: minutes,
		Location:        location,
		RRule:           rrule,
	}
	if _, err := db.InsertTemplate(&tpl); err != nil {
		return err
	}
	fmt.Printf("Added template %s\n", tpl.Name)
	return nil
}

func runTemplateApply(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tpl, err := db.GetTemplate(args[0])
	if err != nil {
		return err
	}
	if tpl == nil {
		return fmt.Errorf("no template named %s", args[0])
	}

	client, _ := cmd.Flags().GetString("client")
	atStr, _ := cmd.Flags().GetString("at")
	untilStr, _ := cmd.Flags().GetString("until")

	start, err := parseWhen(atStr, time.Now())
	if err != nil {
		return err
	}
	until, err := parseWhen(untilStr, start.AddDate(0, 1, 0))
	if err != nil {
		return err
	}

	events, err := template.Expand(*tpl, client, start, until)
	if err != nil {
		return err
	}
	for i := range events {
		if err := db.InsertEvent(&events[i]); err != nil {
			return err
		}
	}

	fmt.Printf("Created %d events from template %s\n", len(events), tpl.Name)
	return nil
}

func runTemplateRm(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.DeleteTemplate(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted template %s\n", args[0])
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[business]
name = "%s"
timezone = "%s"

[calendar]
source = "%s"
google_calendar_id = "%s"
client_id = ""
client_secret = ""
sync_days = %d

[export]
group_by = "%s"
event_sort = "%s"
include_time = %t
include_location = %t
work_only = %t

[rates]
dropin_15 = %d
dropin_30 = %d
dropin_45 = %d
dropin_60 = %d
walk = %d
overnight_per_night = %d
meet_greet = %d
nail_trim = %d

[notifications]
enabled = %t
lead_minutes = %d
`,
			cfg.Business.Name,
			cfg.Business.Timezone,
			cfg.Calendar.Source,
			cfg.Calendar.GoogleID,
			cfg.Calendar.SyncDays,
			cfg.Export.GroupBy,
			cfg.Export.EventSort,
			cfg.Export.IncludeTime,
			cfg.Export.IncludeLocation,
			cfg.Export.WorkOnly,
			cfg.Rates.DropIn15,
			cfg.Rates.DropIn30,
			cfg.Rates.DropIn45,
			cfg.Rates.DropIn60,
			cfg.Rates.Walk,
			cfg.Rates.Overnight,
			cfg.Rates.MeetGreet,
			cfg.Rates.NailTrim,
			cfg.Notify.Enabled,
			cfg.Notify.LeadMinutes,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	return openInEditor(configPath)
}

func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", path, editor)

	// $EDITOR is usually a bare command name, so resolve it against PATH
	// before spawning.
	editorPath, err := exec.LookPath(editor)
	if err != nil {
		fmt.Printf("Could not find editor %q. Config file is at: %s\n", editor, path)
		return nil
	}
	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editorPath, []string{editor, path}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", path)
		return nil
	}
	_, err = process.Wait()
	return err
}
