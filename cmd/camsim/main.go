package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/topdowncam/prefabs"
	"github.com/milk9111/topdowncam/system"
)

type options struct {
	trace   string
	camera  string
	frames  int
	physics bool
}

func main() {
	var opts options
	flag.StringVar(&opts.trace, "trace", "", "YAML input trace to replay (required)")
	flag.StringVar(&opts.camera, "camera", "", "camera YAML overriding prefabs/camera.yaml")
	flag.IntVar(&opts.frames, "frames", 0, "frames to simulate; the last trace frame repeats (default: trace length)")
	flag.BoolVar(&opts.physics, "physics", false, "move the target through the physics world")
	flag.Parse()

	if opts.trace == "" {
		flag.Usage()
		os.Exit(2)
	}
	slog.SetLogLoggerLevel(slog.LevelWarn)

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(opts options, out io.Writer) error {
	frames, err := loadTrace(opts.trace)
	if err != nil {
		return err
	}

	var camera *prefabs.CameraSpec
	if opts.camera != "" {
		data, err := os.ReadFile(opts.camera)
		if err != nil {
			return fmt.Errorf("camsim: read camera %s: %w", opts.camera, err)
		}
		if camera, err = prefabs.ParseCameraSpec(data); err != nil {
			return err
		}
	}

	w, err := system.NewWorld(system.Options{
		Input:     &replay{frames: frames},
		Camera:    camera,
		Kinematic: !opts.physics,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	n := opts.frames
	if n <= 0 {
		n = len(frames)
	}
	for i := range n {
		w.Update()
		c := w.Camera().Controller
		fmt.Fprintf(out, "%d pos=%s offset=%s look=%s\n", i, vec(c.Position()), vec(c.Offset()), vec(c.LookAt()))
	}
	return nil
}

func vec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", v.X(), v.Y(), v.Z())
}
