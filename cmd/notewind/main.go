package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/notewind/notewind/internal/api"
	"github.com/notewind/notewind/internal/cache"
	"github.com/notewind/notewind/internal/config"
	"github.com/notewind/notewind/internal/export"
	"github.com/notewind/notewind/internal/listctl"
	"github.com/notewind/notewind/internal/mindmap"
	"github.com/notewind/notewind/internal/mockapi"
	"github.com/notewind/notewind/internal/model"
	"github.com/notewind/notewind/internal/schedule"
	"github.com/notewind/notewind/internal/session"
	"github.com/notewind/notewind/internal/workflow"
)

type app struct {
	cfg     *config.Config
	client  *api.Client
	session *session.State
	store   *cache.NoteCache
}

func loadApp(configPath string) (*app, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	a := &app{
		cfg:     cfg,
		client:  api.New(cfg.APIBaseURL, api.WithToken(cfg.Token)),
		session: session.NewState(),
	}
	if cfg.Token != "" {
		if err := a.session.SetToken(cfg.Token); err != nil {
			logutil.GetLogger(context.Background()).Warn("token not parseable, falling back to configured user id", zap.Error(err))
		}
	}
	if cfg.CachePath != "" {
		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open note cache: %w", err)
		}
		a.store = store
	}
	return a, nil
}

func (a *app) owner() string {
	if snap := a.session.Current(); snap.LoggedIn {
		return snap.UserID
	}
	return a.cfg.UserID
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

func (a *app) newController(opts ...listctl.Option) *listctl.Controller {
	base := []listctl.Option{listctl.WithLimit(a.cfg.PageLimit), listctl.WithDebounce(time.Duration(a.cfg.DebounceMS) * time.Millisecond)}
	if a.store != nil {
		base = append(base, listctl.WithCache(a.store))
	}
	scope := listctl.Scope{UserID: a.owner()}
	if scope.UserID == "" {
		scope.GlobalSearch = true
	}
	return listctl.New(a.client, scope, append(base, opts...)...)
}

func waitSettled(ch <-chan listctl.Snapshot, timeout time.Duration) (listctl.Snapshot, error) {
	deadline := time.After(timeout)
	for {
		select {
		case snap := <-ch:
			if !snap.Loading && !snap.LoadingMore {
				return snap, nil
			}
		case <-deadline:
			return listctl.Snapshot{}, fmt.Errorf("timed out waiting for list fetch")
		}
	}
}

func printNotes(notes []model.Note) {
	for _, note := range notes {
		fmt.Printf("%s  [%s]  %s\n", note.ID, note.SourceType, note.Title)
	}
}

func newListCmd(configPath *string) *cobra.Command {
	var search, filter string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list notes with optional search and source filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()
			ch := make(chan listctl.Snapshot, 16)
			ctl := a.newController(listctl.WithOnChange(func(s listctl.Snapshot) {
				select {
				case ch <- s:
				default:
				}
			}))
			defer ctl.Close()

			snap, err := waitSettled(ch, 30*time.Second)
			if err != nil {
				return err
			}
			if filter != "" {
				ctl.SetActiveFilter(listctl.Filter(filter))
				if snap, err = waitSettled(ch, 30*time.Second); err != nil {
					return err
				}
			}
			if search != "" {
				ctl.SetSearchQuery(search)
				if snap, err = waitSettled(ch, 30*time.Second); err != nil {
					return err
				}
			}
			for all && snap.HasMore {
				if !ctl.LoadMore() {
					break
				}
				if snap, err = waitSettled(ch, 30*time.Second); err != nil {
					return err
				}
			}
			if snap.LastError != "" {
				return fmt.Errorf("list fetch failed: %s", snap.LastError)
			}
			printNotes(snap.Notes)
			if snap.HasMore {
				fmt.Println("... more available (use --all)")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "search keyword")
	cmd.Flags().StringVar(&filter, "filter", "", "source filter: pdf|audio|youtube")
	cmd.Flags().BoolVar(&all, "all", false, "follow pagination to the end")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	var folderID, interest string
	var durationSec int

	cmd := &cobra.Command{
		Use:   "import",
		Short: "create a note from an external source",
	}
	cmd.PersistentFlags().StringVar(&folderID, "folder", "", "target folder id")
	cmd.PersistentFlags().StringVar(&interest, "interest", "", "interest hint for the summarizer")

	run := func(create func(a *app, onCreated func(*model.Note)) error) error {
		a, err := loadApp(*configPath)
		if err != nil {
			return err
		}
		defer a.close()
		onCreated := func(note *model.Note) {
			fmt.Printf("created note %s: %s\n", note.ID, note.Title)
			if res, err := a.client.UpdateStreak(context.Background(), a.owner()); err == nil && res.StreakUpdated {
				fmt.Println("study streak extended")
			}
		}
		return create(a, onCreated)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "youtube <url>",
		Short: "import a YouTube video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(a *app, onCreated func(*model.Note)) error {
				w := workflow.NewYouTubeWorkflow(a.client, a.owner, workflow.WithOnCreated[workflow.YouTubeInput](onCreated))
				_, err := w.Create(cmd.Context(), workflow.YouTubeInput{Link: args[0], FolderID: folderID, Interest: interest})
				return err
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pdf <file>",
		Short: "import a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(a *app, onCreated func(*model.Note)) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				w := workflow.NewPDFWorkflow(a.client, a.owner, workflow.WithOnCreated[workflow.PDFUpload](onCreated))
				_, err = w.Create(cmd.Context(), workflow.PDFUpload{FileName: args[0], Data: data, FolderID: folderID})
				return err
			})
		},
	})
	audioCmd := &cobra.Command{
		Use:   "audio <file>",
		Short: "import a recorded audio clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(a *app, onCreated func(*model.Note)) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				w := workflow.NewAudioWorkflow(a.client, a.owner, workflow.WithOnCreated[workflow.AudioUpload](onCreated))
				_, err = w.Create(cmd.Context(), workflow.AudioUpload{
					FileName: args[0],
					Data:     data,
					Duration: time.Duration(durationSec) * time.Second,
					FolderID: folderID,
				})
				return err
			})
		},
	}
	audioCmd.Flags().IntVar(&durationSec, "duration", 0, "clip duration in seconds")
	cmd.AddCommand(audioCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "text <file>",
		Short: "import raw text (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(a *app, onCreated func(*model.Note)) error {
				var data []byte
				var err error
				if args[0] == "-" {
					data, err = io.ReadAll(os.Stdin)
				} else {
					data, err = os.ReadFile(args[0])
				}
				if err != nil {
					return err
				}
				w := workflow.NewTextWorkflow(a.client, a.owner, workflow.WithOnCreated[workflow.TextInput](onCreated))
				_, err = w.Create(cmd.Context(), workflow.TextInput{Text: string(data), FolderID: folderID, Interest: interest})
				return err
			})
		},
	})
	return cmd
}


func newMindMapCmd(configPath *string) *cobra.Command {
	var generate bool
	cmd := &cobra.Command{
		Use:   "mindmap <note-id>",
		Short: "lay out a note's mind map and print the geometry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()
			note, err := a.client.GetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if note.MindMap == nil && generate {
				mm, err := a.client.GenerateMindMap(cmd.Context(), note.ID)
				if err != nil {
					return err
				}
				note.MindMap = mm
			}
			engine := mindmap.WrapLRUCache(mindmap.NewEngine(), 64, 10*time.Minute)
			layout, err := engine.LayoutNote(cmd.Context(), note)
			if err != nil {
				return err
			}
			return printJSON(layout)
		},
	}
	cmd.Flags().BoolVar(&generate, "generate", false, "ask the backend to generate a mind map when the note has none")
	return cmd
}

func newExportCmd(configPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <note-id>",
		Short: "export a note as markdown or html",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()
			note, err := a.client.GetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			switch format {
			case "md", "markdown":
				fmt.Print(export.Markdown(note))
			case "html":
				html, err := export.NewRenderer().HTML(note)
				if err != nil {
					return err
				}
				fmt.Print(html)
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "output format: md|html")
	return cmd
}

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "keep the note list fresh and print new arrivals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			seen := map[string]bool{}
			first := true
			ctl := a.newController(listctl.WithOnChange(func(snap listctl.Snapshot) {
				for _, note := range snap.Notes {
					if !seen[note.ID] {
						seen[note.ID] = true
						if !first {
							fmt.Printf("new note %s  [%s]  %s\n", note.ID, note.SourceType, note.Title)
						}
					}
				}
				first = false
			}))
			defer ctl.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := schedule.New()
			if err := sched.Add(a.cfg.Watch.RefreshSpec, &schedule.SilentRefreshJob{Controller: ctl}); err != nil {
				return err
			}
			if owner := a.owner(); owner != "" {
				if err := sched.Add(a.cfg.Watch.StreakSpec, &schedule.StreakJob{API: a.client, UserID: owner}); err != nil {
					return err
				}
			}
			sched.Start(ctx)
			defer sched.Stop()

			logutil.GetLogger(ctx).Info("watching note list",
				zap.String("refresh_spec", a.cfg.Watch.RefreshSpec))
			<-ctx.Done()
			return nil
		},
	}
}

func newMockCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "run an in-memory mock of the notewind backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init("", "info", 0, 0, 0, true)
			server := mockapi.New()
			engine, err := webapi.NewEngine(
				"/api/v1",
				fmt.Sprintf("0.0.0.0:%d", port),
				webapi.WithRegister(func(group *gin.RouterGroup) {
					server.Register(group)
				}),
				webapi.WithExtraMiddlewares(
					gzip.Gzip(gzip.DefaultCompression),
				),
			)
			if err != nil {
				return fmt.Errorf("init web engine: %w", err)
			}
			logutil.GetLogger(cmd.Context()).Info("mock backend listening", zap.Int("port", port))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				if err := engine.Run(); err != nil && err != http.ErrServerClosed {
					logutil.GetLogger(ctx).Error("mock server error", zap.Error(err))
				}
			}()
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 8333, "listen port")
	return cmd
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "notewind",
		Short: "notewind study-notes client",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	rootCmd.AddCommand(
		newListCmd(&configPath),
		newImportCmd(&configPath),
		newMindMapCmd(&configPath),
		newExportCmd(&configPath),
		newWatchCmd(&configPath),
		newMockCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("command failed", zap.Error(err))
	}
}
