package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/digitlive/internal/channel"
	"github.com/san-kum/digitlive/internal/clock"
	"github.com/san-kum/digitlive/internal/config"
	"github.com/san-kum/digitlive/internal/export"
	"github.com/san-kum/digitlive/internal/netdiagram"
	"github.com/san-kum/digitlive/internal/predict"
	"github.com/san-kum/digitlive/internal/storage"
	"github.com/san-kum/digitlive/internal/surface"
	"github.com/san-kum/digitlive/internal/viz"
)

var (
	configFile string
	dataDir    string
	serverURL  string
	preset     string
	verbose    bool
	// predict
	useHTTP bool
	timeout time.Duration
	// animate
	animateAt time.Duration
	outFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "digitlive",
		Short:         "draw digits and watch a remote classifier guess them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (snapshots, ui log)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "classifier websocket url")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "transmission rate preset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	predictCmd := &cobra.Command{
		Use:   "predict [image]",
		Short: "classify one image file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPredict,
	}
	predictCmd.Flags().BoolVar(&useHTTP, "http", false, "use the http endpoint instead of the websocket")
	predictCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "reply timeout")

	animateCmd := &cobra.Command{
		Use:   "animate [digit]",
		Short: "render the activation path of a digit",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnimate,
	}
	animateCmd.Flags().DurationVar(&animateAt, "at", time.Second, "offset into the animation")
	animateCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (.svg or .png), svg on stdout if empty")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "show the probabilities of a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list transmission rate presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tACTIVE\tIDLE\tCOOLDOWN")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Active, p.Idle, p.Cooldown)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(predictCmd, animateCmd, listCmd, showCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig applies the config file, then the preset, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("server") {
		cfg.Server.URL = serverURL
	}
	return cfg, cfg.Validate()
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(filepath.Join(cfg.DataDir, "snapshots"))
	if err := st.Init(); err != nil {
		return err
	}

	// the alt screen owns the terminal, so the ui logs to a file
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "digitlive.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := newLogger(logFile, logLevel(cfg.LogLevel, verbose))
	ctx := withLogger(cmd.Context(), logger)
	return viz.Run(ctx, cfg, logger, st)
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, logLevel(cfg.LogLevel, verbose))
	ctx := withLogger(cmd.Context(), logger)

	frame, blank, err := readFrame(args[0])
	if err != nil {
		return err
	}
	if blank {
		fmt.Println("image is blank, nothing sent")
		return nil
	}

	var res predict.Result
	if useHTTP {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		res, err = channel.PostPredict(ctx, &http.Client{}, cfg.Server.HTTPURL, frame)
	} else {
		res, err = predictOnce(ctx, cfg, frame)
	}
	if err != nil {
		var se *predict.ServerError
		if errors.As(err, &se) {
			return fmt.Errorf("classifier error: %s", se.Message)
		}
		return err
	}

	printResult(res)
	return nil
}

// predictOnce opens the channel, sends one frame and waits for its reply on a
// local event loop.
func predictOnce(ctx context.Context, cfg *config.Config, frame string) (predict.Result, error) {
	logger := loggerFromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		res  predict.Result
		err  error
		done bool
	)
	loop := clock.NewLoop(16)
	var ch *channel.Channel
	ch = channel.New(loop.Post, logger, channel.Handler{
		OnOpen: func() {
			if sendErr := ch.Send(frame); sendErr != nil {
				err, done = sendErr, true
				cancel()
			}
		},
		OnMessage: func(r predict.Result, msgErr error) {
			res, err, done = r, msgErr, true
			cancel()
		},
		OnClose: func(closeErr error) {
			err, done = closeErr, true
			cancel()
		},
	})

	ch.Open(ctx, cfg.Server.URL, cfg.Server.Origin)
	runErr := loop.Run(ctx)
	ch.Close()

	if !done {
		return predict.Result{}, fmt.Errorf("no reply from %s: %w", cfg.Server.URL, runErr)
	}
	return res, err
}

// readFrame loads an image file and returns its data URL, or blank when the
// image holds no ink.
func readFrame(path string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", false, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	surf := surface.FromImage(img, 0)
	if surf.IsEmpty() {
		return "", true, nil
	}
	frame, err := surf.DataURL()
	return frame, false, err
}

func printResult(res predict.Result) {
	fmt.Printf("prediction: %d\n", res.Prediction)
	fmt.Printf("confidence: %s\n\n", predict.Percent(res.Confidence))
	printRows(predict.Rank(res.Probabilities))
}

func printRows(rows []predict.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIGIT\tPROB\tTIER")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.Digit, r.Percent(), r.Tier)
	}
	w.Flush()
}

func runAnimate(cmd *cobra.Command, args []string) error {
	digit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid digit %q", args[0])
	}

	d, err := export.Frame(digit, animateAt)
	if err != nil {
		return err
	}
	lay := netdiagram.DefaultLayout(d.Topology())
	pal := netdiagram.DefaultPalette()
	label := fmt.Sprintf("Predicted: %d", digit)

	switch strings.ToLower(filepath.Ext(outFile)) {
	case "":
		if outFile != "" {
			return fmt.Errorf("output file needs a .svg or .png extension")
		}
		fmt.Println(export.DiagramToSVG(d, lay, pal, label))
		return nil
	case ".svg":
		return os.WriteFile(outFile, []byte(export.DiagramToSVG(d, lay, pal, label)), 0644)
	case ".png":
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.DiagramToPNG(f, d, lay, pal)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(outFile))
	}
}

func snapshotStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(filepath.Join(cfg.DataDir, "snapshots")), nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st, err := snapshotStore(cmd)
	if err != nil {
		return err
	}
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tVIEW\tPREDICTION\tCONFIDENCE")

	for _, s := range snaps {
		pred, conf := "-", "-"
		if s.HasResult {
			pred, conf = strconv.Itoa(s.Prediction), predict.Percent(s.Confidence)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.View,
			pred,
			conf,
		)
	}

	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	st, err := snapshotStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("snapshot: %s\n", meta.ID)
	fmt.Printf("saved: %s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Printf("frame: %s\n", filepath.Join(st.Path(meta.ID), "frame.png"))
	if !meta.HasResult {
		fmt.Println("no result recorded")
		return nil
	}

	probs, err := st.LoadProbabilities(meta.ID)
	if err != nil {
		return err
	}
	printResult(predict.Result{Probabilities: probs, Prediction: meta.Prediction, Confidence: meta.Confidence})
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "digitlive.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	log.Info("wrote config", "path", path)
	return nil
}
