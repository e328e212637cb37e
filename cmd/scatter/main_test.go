package main

import (
	"bytes"
	"errors"
	"image/gif"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/scatter"
	"github.com/tdewolff/test"
)

func TestCanvasWriter(t *testing.T) {
	for _, filename := range []string{"out.svg", "out.PDF", "out.png", "out.jpg", "out.jpeg"} {
		writer, err := canvasWriter(filename, canvas.DPMM(1.0))
		test.Error(t, err)
		test.That(t, writer != nil, filename)
	}
	_, err := canvasWriter("out.bmp", canvas.DPMM(1.0))
	test.That(t, err != nil)
}

func TestBrowserAddr(t *testing.T) {
	test.String(t, browserAddr(&net.TCPAddr{Port: 8080}), "localhost:8080")
	test.String(t, browserAddr(&net.TCPAddr{IP: net.IPv6unspecified, Port: 80}), "localhost:80")
	test.String(t, browserAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}), "127.0.0.1:9000")
}

func TestAnimate(t *testing.T) {
	output := filepath.Join(t.TempDir(), "transition.gif")
	cmd := &Animate{
		Data:       "../../testdata/data.csv",
		Select:     "age",
		Frames:     3,
		Resolution: 0.5,
		Output:     output,
	}
	test.Error(t, cmd.Run())

	b, err := os.ReadFile(output)
	test.Error(t, err)
	anim, err := gif.DecodeAll(bytes.NewReader(b))
	test.Error(t, err)
	test.T(t, len(anim.Image), 3)
	test.T(t, anim.Image[0].Bounds().Dx(), 400)
	test.T(t, anim.Delay[2], 200)
}

func TestAnimateSelected(t *testing.T) {
	output := filepath.Join(t.TempDir(), "transition.gif")
	cmd := &Animate{
		Data:   "../../testdata/data.csv",
		Select: "poverty",
		Frames: 3,
		Output: output,
	}
	test.Error(t, cmd.Run())
	_, err := os.Stat(output)
	test.That(t, os.IsNotExist(err))
}

func TestAnimateNoData(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	test.Error(t, os.WriteFile(data, []byte("state,abbr,poverty,age,healthcare,smokes\nAlabama,AL,19.3,n/a,13.9,21.1\nAlaska,AK,11.2,n/a,15,19.9\n"), 0o644))

	output := filepath.Join(dir, "transition.gif")
	cmd := &Animate{
		Data:   data,
		Select: "age",
		Frames: 3,
		Output: output,
	}
	err := cmd.Run()
	test.That(t, errors.Is(err, scatter.ErrNoData))
	_, err = os.Stat(output)
	test.That(t, os.IsNotExist(err))
}
