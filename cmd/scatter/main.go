package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/scatter"
	"github.com/tdewolff/scatter/interactive"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

type Render struct {
	Config     string  `short:"c" desc:"TOML configuration file"`
	Data       string  `short:"d" desc:"CSV data file"`
	X          string  `short:"x" desc:"Field on the horizontal axis (poverty, age)"`
	Y          string  `short:"y" desc:"Field on the vertical axis (healthcare, smokes)"`
	Plain      bool    `desc:"Write SVG without tooltips and links"`
	Resolution float64 `short:"r" default:"1.0" desc:"Resolution in pixels per unit for raster output"`
	Output     string  `short:"o" default:"scatter.svg" desc:"Output file, the extension sets the format"`
	Verbose    bool    `short:"v" desc:"Verbose logging"`
}

type Simple struct {
	Config     string  `short:"c" desc:"TOML configuration file"`
	Data       string  `short:"d" desc:"CSV data file"`
	X          string  `short:"x" desc:"Field on the horizontal axis (poverty, age)"`
	Y          string  `short:"y" desc:"Field on the vertical axis (healthcare, smokes)"`
	Backend    string  `short:"b" default:"canvas" desc:"Plotting backend (canvas, gonum, gochart)"`
	Resolution float64 `short:"r" default:"1.0" desc:"Resolution in pixels per unit for raster output"`
	Output     string  `short:"o" default:"simple.svg" desc:"Output file, the extension sets the format"`
	Verbose    bool    `short:"v" desc:"Verbose logging"`
}

type Animate struct {
	Config     string  `short:"c" desc:"TOML configuration file"`
	Data       string  `short:"d" desc:"CSV data file"`
	X          string  `short:"x" desc:"Field on the horizontal axis before the transition"`
	Y          string  `short:"y" desc:"Field on the vertical axis before the transition"`
	Select     string  `short:"s" desc:"Field to select, its axis is transitioned"`
	Frames     int     `short:"n" default:"25" desc:"Number of frames"`
	Resolution float64 `short:"r" default:"1.0" desc:"Resolution in pixels per unit"`
	Output     string  `short:"o" default:"transition.gif" desc:"Animated GIF, or a frame file pattern such as frame%03d.png"`
	Verbose    bool    `short:"v" desc:"Verbose logging"`
}

type Serve struct {
	Config  string `short:"c" desc:"TOML configuration file"`
	Data    string `short:"d" desc:"CSV data file"`
	Addr    string `short:"a" desc:"Listen address"`
	Open    bool   `desc:"Open the chart in the browser"`
	Verbose bool   `short:"v" desc:"Verbose logging"`
}

func main() {
	root := argp.NewCmd(&Render{}, "Scatter plot of public-health survey data by state")
	root.AddCmd(&Simple{}, "simple", "Render a static scatter plot with axes starting at zero")
	root.AddCmd(&Animate{}, "animate", "Render the transition after selecting a field")
	root.AddCmd(&Serve{}, "serve", "Serve the interactive chart")
	root.Parse()
	root.PrintHelp()
}

func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// setup loads the configuration and the dataset. Failing to load the data is fatal.
func setup(log *zap.Logger, config, data, x, y string) (Config, scatter.Dataset, scatter.Style) {
	cfg, err := LoadConfig(config)
	if err != nil {
		log.Fatal("failed to load configuration", zap.String("path", config), zap.Error(err))
	}
	if err := cfg.Override(data, x, y); err != nil {
		log.Fatal("invalid option", zap.Error(err))
	}

	dataset, err := scatter.LoadCSV(cfg.Data)
	if err != nil {
		log.Fatal("failed to load data", zap.String("path", cfg.Data), zap.Error(err))
	}
	log.Debug("loaded data", zap.String("path", cfg.Data), zap.Int("records", len(dataset)))

	style, err := cfg.Style()
	if err != nil {
		log.Fatal("failed to load font", zap.Error(err))
	}
	return cfg, dataset, style
}

func (cmd *Render) Run() error {
	log := newLogger(cmd.Verbose)
	defer log.Sync()

	cfg, data, style := setup(log, cmd.Config, cmd.Data, cmd.X, cmd.Y)
	if ext := strings.ToLower(filepath.Ext(cmd.Output)); ext == ".svg" && !cmd.Plain {
		doc := interactive.NewDocument(data, interactive.Options{
			Layout:   cfg.Layout,
			Style:    style,
			Duration: cfg.Duration,
			Minify:   cfg.Minify,
		})
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := doc.WriteSVG(f, interactive.NewState(cfg.X, cfg.Y)); err != nil {
			return err
		}
		log.Info("written", zap.String("output", cmd.Output))
		return f.Close()
	}

	chart, err := scatter.NewChartWith(data, cfg.Layout, cfg.X, cfg.Y)
	if err != nil {
		return err
	}
	c := canvas.New(cfg.Layout.Width, cfg.Layout.Height)
	chart.Draw(c, style)
	if err := renderers.Write(cmd.Output, c, canvas.DPMM(cmd.Resolution)); err != nil {
		return err
	}
	log.Info("written", zap.String("output", cmd.Output))
	return nil
}

func (cmd *Simple) Run() error {
	log := newLogger(cmd.Verbose)
	defer log.Sync()

	cfg, data, style := setup(log, cmd.Config, cmd.Data, cmd.X, cmd.Y)
	plot, err := scatter.NewSimple(data, cfg.Layout, cfg.X, cfg.Y)
	if err != nil {
		return err
	}

	switch cmd.Backend {
	case "canvas":
		c := canvas.New(cfg.Layout.Width, cfg.Layout.Height)
		plot.Draw(c, style)
		err = renderers.Write(cmd.Output, c, canvas.DPMM(cmd.Resolution))
	case "gonum":
		var c *canvas.Canvas
		if c, err = plot.DrawGonumPlot(style); err == nil {
			err = renderers.Write(cmd.Output, c, canvas.DPMM(cmd.Resolution))
		}
	case "gochart":
		err = writeGoChart(cmd.Output, plot, style, canvas.DPMM(cmd.Resolution))
	default:
		fmt.Println("ERROR: unknown backend", cmd.Backend)
		return argp.ShowUsage
	}
	if err != nil {
		return err
	}
	log.Info("written", zap.String("output", cmd.Output), zap.String("backend", cmd.Backend))
	return nil
}

func writeGoChart(filename string, plot *scatter.Simple, style scatter.Style, resolution canvas.Resolution) error {
	writer, err := canvasWriter(filename, resolution)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := plot.RenderGoChart(f, writer, style); err != nil {
		return err
	}
	return f.Close()
}

// canvasWriter returns the canvas writer for the output format given by the file extension.
func canvasWriter(filename string, resolution canvas.Resolution) (canvas.Writer, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".svg":
		return renderers.SVG(), nil
	case ".pdf":
		return renderers.PDF(), nil
	case ".png":
		return renderers.PNG(resolution), nil
	case ".jpg", ".jpeg":
		return renderers.JPEG(resolution), nil
	default:
		return nil, fmt.Errorf("unknown file extension: %v", ext)
	}
}

func (cmd *Animate) Run() error {
	log := newLogger(cmd.Verbose)
	defer log.Sync()

	if cmd.Select == "" {
		fmt.Println("ERROR: must specify the field to select")
		return argp.ShowUsage
	} else if cmd.Frames < 2 {
		return fmt.Errorf("need at least two frames")
	}

	cfg, data, style := setup(log, cmd.Config, cmd.Data, cmd.X, cmd.Y)
	chart, err := scatter.NewChartWith(data, cfg.Layout, cfg.X, cfg.Y)
	if err != nil {
		return err
	}

	var tr *scatter.Transition
	var ok bool
	if f, perr := scatter.ParseXField(cmd.Select); perr == nil {
		tr, ok, err = chart.SelectX(f)
	} else if f, perr := scatter.ParseYField(cmd.Select); perr == nil {
		tr, ok, err = chart.SelectY(f)
	} else {
		return fmt.Errorf("%w: %q", scatter.ErrUnknownField, cmd.Select)
	}
	if err != nil {
		return fmt.Errorf("select %s: %w", cmd.Select, err)
	} else if !ok {
		log.Info("field already selected, nothing to animate", zap.String("field", cmd.Select))
		return nil
	}
	tr.Duration = cfg.Duration

	resolution := canvas.DPMM(cmd.Resolution)
	frames := tr.Frames(cmd.Frames)
	if strings.Contains(cmd.Output, "%") {
		for i, elapsed := range frames {
			c := canvas.New(cfg.Layout.Width, cfg.Layout.Height)
			chart.DrawFrame(c, style, tr, elapsed)
			if err := renderers.Write(fmt.Sprintf(cmd.Output, i), c, resolution); err != nil {
				return err
			}
		}
		log.Info("written frames", zap.String("pattern", cmd.Output), zap.Int("frames", len(frames)))
		return nil
	}

	anim := &gif.GIF{}
	delay := int(tr.Duration / time.Duration(len(frames)-1) / (10 * time.Millisecond))
	for _, elapsed := range frames {
		c := canvas.New(cfg.Layout.Width, cfg.Layout.Height)
		chart.DrawFrame(c, style, tr, elapsed)
		img, err := rasterize(c, resolution)
		if err != nil {
			return err
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	anim.Delay[len(anim.Delay)-1] = 200 // hold the final frame

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return err
	}
	log.Info("written", zap.String("output", cmd.Output), zap.Int("frames", len(frames)))
	return f.Close()
}

// rasterize renders the canvas to a paletted image, dithering the translucent markers.
func rasterize(c *canvas.Canvas, resolution canvas.Resolution) (*image.Paletted, error) {
	buf := &bytes.Buffer{}
	if err := renderers.PNG(resolution)(buf, c); err != nil {
		return nil, err
	}
	img, err := png.Decode(buf)
	if err != nil {
		return nil, err
	}
	paletted := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, img.Bounds().Min)
	return paletted, nil
}

func (cmd *Serve) Run() error {
	log := newLogger(cmd.Verbose)
	defer log.Sync()

	cfg, data, style := setup(log, cmd.Config, cmd.Data, "", "")
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}
	doc := interactive.NewDocument(data, interactive.Options{
		Layout:   cfg.Layout,
		Style:    style,
		Duration: cfg.Duration,
		Minify:   cfg.Minify,
	})

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	url := "http://" + browserAddr(ln.Addr())
	server := &http.Server{
		Handler:           interactive.NewHandler(doc, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()

	log.Info("serving", zap.String("url", url), zap.Int("records", len(data)))
	if cmd.Open {
		if err := browser.OpenURL(url); err != nil {
			log.Warn("failed to open browser", zap.Error(err))
		}
	}
	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// browserAddr returns the listen address with an unspecified host replaced by localhost.
func browserAddr(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok && (tcp.IP == nil || tcp.IP.IsUnspecified()) {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return addr.String()
}
