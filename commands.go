package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/adamspd/StudyGuide/content"
	"github.com/adamspd/StudyGuide/render"
	"github.com/adamspd/StudyGuide/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "open the interactive terminal browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "guide", Usage: "guide id to open first"},
			&cli.StringFlag{Name: "topic", Usage: "topic slug or label to open first"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colours"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// the TUI owns the terminal, so only the log file and journal stay on
			closeLog, err := setupLogging(cfg, true)
			if err != nil {
				return err
			}
			defer closeLog()

			catalog, err := content.LoadCatalog()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			m, err := tui.New(catalog, tui.Options{
				GuideID: cmd.String("guide"),
				Topic:   cmd.String("topic"),
				NoColor: cmd.Bool("no-color") || cfg.NoColor,
			})
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

func guidesCommand() *cli.Command {
	return &cli.Command{
		Name:  "guides",
		Usage: "list the guides and their topics",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "topics", Usage: "also list each guide's topics"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colours"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, false)
			if err != nil {
				return err
			}
			defer closeLog()

			database, _, err := openCatalogDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			guides, err := database.ListGuides()
			if err != nil {
				return fmt.Errorf("list guides: %w", err)
			}

			opts := render.Options{Width: terminalWidth(0), NoColor: noColor(cmd, cfg.NoColor)}
			rows := make([][]string, 0, len(guides))
			for _, g := range guides {
				quiz := "no"
				if g.HasQuiz {
					quiz = "yes"
				}
				rows = append(rows, []string{g.ID, g.Title, strconv.Itoa(g.TopicCount), quiz})
			}
			fmt.Println(render.Table([]string{"ID", "Title", "Topics", "Quiz"}, rows, opts))

			if !cmd.Bool("topics") {
				return nil
			}
			for _, g := range guides {
				detail, err := database.GetGuide(g.ID)
				if err != nil {
					return fmt.Errorf("get guide %s: %w", g.ID, err)
				}
				fmt.Printf("\n%s\n", detail.Title)
				for _, t := range detail.Topics {
					fmt.Printf("  %-22s %s\n", t.Slug, t.Title)
				}
			}
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print one rendered topic",
		ArgsUsage: "GUIDE TOPIC",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Usage: "wrap width (default: terminal width)"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colours"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("usage: show GUIDE TOPIC")
			}
			guideID, topicKey := cmd.Args().Get(0), cmd.Args().Get(1)

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, false)
			if err != nil {
				return err
			}
			defer closeLog()

			catalog, err := content.LoadCatalog()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			guide, ok := catalog.Guide(guideID)
			if !ok {
				ids := make([]string, 0, len(catalog.Guides()))
				for _, g := range catalog.Guides() {
					ids = append(ids, g.ID)
				}
				return fmt.Errorf("unknown guide %q (available: %s)", guideID, strings.Join(ids, ", "))
			}
			topic, ok := guide.Topic(topicKey)
			if !ok {
				return fmt.Errorf("unknown topic %q in guide %s", topicKey, guideID)
			}

			opts := render.Options{
				Width:   terminalWidth(int(cmd.Int("width"))),
				NoColor: noColor(cmd, cfg.NoColor),
			}
			fmt.Println(render.Guide(guide, opts))
			fmt.Println()
			fmt.Println(render.Topic(topic, opts))
			if footer := render.Footer(guide, opts); footer != "" {
				fmt.Println()
				fmt.Println(footer)
			}
			return nil
		},
	}
}

// terminalWidth returns requested when positive, else the width of stdout when it is a terminal.
func terminalWidth(requested int) int {
	if requested > 0 {
		return requested
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	return render.DefaultWidth
}

// noColor is set by the flag, NO_COLOR, or stdout not being a terminal.
func noColor(cmd *cli.Command, envNoColor bool) bool {
	return cmd.Bool("no-color") || envNoColor || !term.IsTerminal(int(os.Stdout.Fd()))
}
