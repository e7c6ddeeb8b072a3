package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/l1jgo/tilecore/internal/config"
	"github.com/l1jgo/tilecore/internal/data"
	"github.com/l1jgo/tilecore/internal/logging"
	"github.com/l1jgo/tilecore/internal/scripting"
	"github.com/l1jgo/tilecore/internal/tile"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Display helpers ───────────────────────────────────────────────

func printBanner(job string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             tilecore  tiletool            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m   autotile · collision · path · replay    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mjob:\033[0m %s\n\n", job)
}

// displayWidth counts wide runes as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func printSection(title string) {
	lineLen := 46 - displayWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	s := fmt.Sprint(value)
	dotsLen := 42 - displayWidth(label) - len(s)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), s)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printWarn(msg string) {
	fmt.Printf("  \033[31m✗\033[0m %s\n", msg)
}

// ── Main logic ────────────────────────────────────────────────────

func run() error {
	_ = godotenv.Load(".env")

	// 1. Load config
	cfgPath := "config/tiletool.toml"
	if p := os.Getenv("TILECORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	jobPath := "data/yaml/job.yaml"
	if p := os.Getenv("TILECORE_JOB"); p != "" {
		jobPath = p
	}
	if len(os.Args) > 1 {
		jobPath = os.Args[1]
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(jobPath)

	// 3. Case rules and tile table
	printSection("data")
	var rules tile.CaseRules = tile.StaticRules{}
	if cfg.Paint.ScriptsDir != "" {
		lr, err := scripting.NewRules(cfg.Paint.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("lua rules: %w", err)
		}
		defer lr.Close()
		rules = lr
		printOK("lua case rules loaded")
	}

	table, err := data.LoadTileTable(cfg.Paint.TileTable, rules)
	if err != nil {
		return fmt.Errorf("load tile table: %w", err)
	}
	printStat("grounds", table.GroundCount())
	printStat("walls", table.WallCount())

	job, err := loadJob(jobPath)
	if err != nil {
		return err
	}
	printStat("paint ops", len(job.Paint))
	printStat("path queries", len(job.Paths))
	fmt.Println()

	// 4. Run the job
	res, err := runJob(job, cfg, table, log)
	if err != nil {
		return err
	}

	printSection("scene")
	printStat("tile entries", res.Scene.Len())
	printStat("collision shapes", res.Shapes)
	view := job.View.Rect()
	if view.Empty() {
		view = sceneBounds(res.Scene)
	}
	if !view.Empty() {
		fmt.Println()
		for _, line := range strings.Split(strings.TrimRight(render(res.Scene, view, table, job, res.Paths), "\n"), "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
	fmt.Println()

	if len(res.Paths) > 0 {
		printSection("paths")
		for i, p := range res.Paths {
			if p == nil {
				printWarn(fmt.Sprintf("query %d: no path", i))
				continue
			}
			last := p[len(p)-1]
			printOK(fmt.Sprintf("query %d: %d points, ends at (%.1f, %.1f)", i, len(p), last[0], last[1]))
		}
		fmt.Println()
	}

	if len(res.Samples) > 0 {
		printSection("replay")
		printStat("actors spawned", res.Spawned)
		for _, s := range res.Samples {
			printStat(fmt.Sprintf("t=%d actor %d", s.At, s.Actor), fmt.Sprintf("(%.2f, %.2f)", s.Pos[0], s.Pos[1]))
		}
		fmt.Println()
	}

	log.Info("job complete",
		zap.String("job", jobPath),
		zap.Int("entries", res.Scene.Len()),
		zap.Int("paths", len(res.Paths)),
		zap.Int("samples", len(res.Samples)))
	return nil
}
