package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/surlink/internal/client/capture"
	"github.com/dmitrijs2005/surlink/internal/client/client"
	"github.com/dmitrijs2005/surlink/internal/client/config"
	"github.com/dmitrijs2005/surlink/internal/client/services"
	"github.com/dmitrijs2005/surlink/internal/filex"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

// printFn writes without a trailing newline; the progress bar redraws in place.
var printFn = fmt.Print

type App struct {
	config *config.Config
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	repos  *client.Repositories

	scanner  *services.Scanner
	stats    services.StatsService
	history  *services.History
	poller   *services.StatusPoller
	auth     services.AuthService
	quiz     *services.Quiz
	theme    services.ThemeService
	capture  *services.Capture
	feedback services.FeedbackService

	renderer *Renderer
	progress *Progress

	outMu sync.Mutex
}

// deps are the external collaborators an App is built from.
type deps struct {
	repos   *client.Repositories
	scanner client.ScannerClient
	camera  capture.Camera
	ocr     capture.OCR
	avatars services.AvatarStore
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the records store and wires every service from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	driver, dsn := c.StoreDriver, c.DatabaseDSN
	if driver == config.StoreSQLite && dsn == "" {
		dir, err := filex.EnsureDataDir(c.DataDir)
		if err != nil {
			return nil, err
		}
		dsn = filepath.Join(dir, "surlink.db")
	}

	repos, err := client.InitDatabase(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "records store ready", "driver", driver)

	httpClient := &http.Client{}
	var avatars services.AvatarStore = services.InlineAvatarStore{}
	if c.AvatarsInS3() {
		avatars = services.NewS3AvatarStore(services.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		}, httpClient)
	}

	return newApp(c, log, deps{
		repos:   repos,
		scanner: client.NewHTTPClient(c.APIURL, c.ExplainerURL, httpClient),
		camera:  capture.NewFFmpegCamera(c.FFmpegPath, c.CameraFrontDevice, c.CameraBackDevice),
		ocr:     capture.NewTesseractOCR(c.TesseractPath, c.OCRLanguage),
		avatars: avatars,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}), nil
}

func newApp(c *config.Config, log logging.Logger, d deps) *App {
	store := d.repos.Records

	a := &App{
		config:   c,
		log:      log,
		reader:   d.reader,
		repos:    d.repos,
		stats:    services.NewStatsService(store, log.With("component", "stats")),
		history:  services.NewHistory(),
		poller:   services.NewStatusPoller(d.scanner, log.With("component", "status"), c.ProbeTimeout),
		auth:     services.NewAuthService(store, d.avatars, log.With("component", "auth"), c.SessionTTL),
		quiz:     services.NewQuiz(store, log.With("component", "quiz")),
		theme:    services.NewThemeService(store, log),
		feedback: services.NewFeedbackService(store, log.With("component", "feedback")),
		renderer: NewRenderer(""),
	}
	a.out = &lockedWriter{mu: &a.outMu, w: d.out}
	a.scanner = services.NewScanner(d.scanner, a.stats, a.history, log.With("component", "scanner"), c.RequestTimeout)
	a.capture = services.NewCapture(d.camera, d.ocr, a.scanner, log.With("component", "capture"))

	a.progress = NewProgress(progressInterval, progressStep, func(pct int) {
		a.outMu.Lock()
		defer a.outMu.Unlock()
		printFn("\r" + a.renderer.Progress(pct))
	})
	a.scanner.SetHooks(services.ScanHooks{
		Started: func(msg string) {
			a.println(a.renderer.UserMessage(msg))
			a.println(a.renderer.Typing())
			a.progress.Start()
		},
		Finished: func() {
			a.progress.Stop()
			a.outMu.Lock()
			printFn("\r\033[K")
			a.outMu.Unlock()
		},
	})
	a.quiz.Subscribe(func(st services.QuizState) {
		a.println(a.renderer.Quiz(st))
	})
	return a
}

// lockedWriter shares the App output mutex with println, so input prompts
// and timer-driven output do not interleave.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// println serialises output from the REPL and background goroutines.
func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	printlnFn(args...)
}

// restore loads persisted state: theme, stats, best quiz score and session.
func (a *App) restore(ctx context.Context) {
	a.theme.Load(ctx)
	a.renderer.SetTheme(a.theme.Current())
	a.stats.Load(ctx)
	a.quiz.LoadBest(ctx)

	if u, err := a.auth.Current(ctx); err == nil {
		a.log.Info(ctx, "session restored", "email", u.Email)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, err := a.auth.Current(ctx)
	return err == nil
}

// statusLine is shown in the REPL prompt.
func (a *App) statusLine() string {
	s := "[" + a.poller.Status().String() + "]"
	if u, err := a.auth.Current(context.Background()); err == nil {
		s += " " + u.Email
	}
	return s
}

// Run restores state, starts the status poller and runs the REPL until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.repos.DB.Close()

	a.restore(ctx)
	a.poller.OnChange(func(st services.Status) {
		a.log.Debug(ctx, "status", "value", st.String())
	})

	a.println("Welcome to SurLink (type 'help' for commands)")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.poller.Run(gctx, a.config.StatusCheckInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	replDone := make(chan struct{})
	go func() {
		defer close(replDone)
		runREPL(gctx, a, a.statusLine, a.reader)
	}()

	select {
	case <-replDone:
	case <-ctx.Done():
	}
	cancel()

	a.quiz.Stop()
	a.capture.Close()
	a.progress.Stop()

	return g.Wait()
}
