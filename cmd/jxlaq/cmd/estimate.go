package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spf13/cobra"

	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/aq"
	"github.com/jxlenc/adaptive-quant/butteraugli"
	"github.com/jxlenc/adaptive-quant/config"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/internal/debugdump"
	"github.com/jxlenc/adaptive-quant/opsin"
	"github.com/jxlenc/adaptive-quant/quantizer"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

var (
	estimateTarget      float32
	estimateSpeed       string
	estimateDumpHeatmap string
	estimateWorkers     int
)

var speedTiers = map[string]config.SpeedTier{
	"falcon":   config.Falcon,
	"cheetah":  config.Cheetah,
	"hare":     config.Hare,
	"wombat":   config.Wombat,
	"squirrel": config.Squirrel,
	"kitten":   config.Kitten,
	"tortoise": config.Tortoise,
}

var estimateCmd = &cobra.Command{
	Use:   "estimate <image>",
	Short: "Run the adaptive quantization field estimator against an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().Float32Var(&estimateTarget, "distance", 1.0, "butteraugli target distance")
	estimateCmd.Flags().StringVar(&estimateSpeed, "speed", "squirrel", "speed tier: falcon|cheetah|hare|wombat|squirrel|kitten|tortoise")
	estimateCmd.Flags().StringVar(&estimateDumpHeatmap, "dump-heatmaps", "", "directory to dump quant-field heatmaps into (disabled if empty)")
	estimateCmd.Flags().IntVar(&estimateWorkers, "workers", 0, "parallel workers (0 = NumCPU)")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(_ *cobra.Command, args []string) error {
	path := args[0]
	start := time.Now()

	tier, ok := speedTiers[estimateSpeed]
	if !ok {
		return fmt.Errorf("unknown speed tier %q", estimateSpeed)
	}

	img, err := loadImage(path)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	logVerbose("decoded %s: %dx%d", path, img.Bounds().Dx(), img.Bounds().Dy())

	opsinImage := opsin.FromSRGB(img)
	bw := opsinImage.XSize() / 8
	bh := opsinImage.YSize() / 8

	acStrategy := acstrategy.NewImage(bw, bh)
	q := quantizer.NewQuantizer(bw, bh)
	pool := threadpool.New(estimateWorkers)
	comparator := butteraugli.NewPerceptualComparator()
	stats := aq.NewSearchStats()
	stats.LogSearchState = verbose
	stats.Trace = os.Stderr

	cparams := config.DefaultCompressParams()
	cparams.ButteraugliTarget = estimateTarget
	cparams.SpeedTier = tier

	var aux *debugdump.AuxOut
	if estimateDumpHeatmap != "" {
		aux, err = debugdump.New(estimateDumpHeatmap)
		if err != nil {
			return err
		}
	}

	aq.FindBestQuantizer(opsinImage, opsinImage, acStrategy, q, cparams, comparator, pool, 1.0, stats)

	if aux != nil {
		field := rawFieldToFloat(q)
		if err := aux.DumpQuantField("quant_field", field); err != nil {
			return fmt.Errorf("dump quant field: %w", err)
		}
		if err := aux.DumpHeatmap("quant_heatmap", field, 4*cparams.ButteraugliTarget, 6*cparams.ButteraugliTarget); err != nil {
			return fmt.Errorf("dump heatmap: %w", err)
		}
	}

	printReport(path, q, stats, time.Since(start))
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func rawFieldToFloat(q *quantizer.Quantizer) *imagef.ImageF {
	raw := q.RawQuantField()
	out := imagef.NewImageF(raw.XSize(), raw.YSize())
	for y := 0; y < raw.YSize(); y++ {
		src := raw.ConstRow(y)
		dst := out.Row(y)
		for x, v := range src {
			dst[x] = 1.0 / float32(v)
		}
	}
	return out
}

func printReport(path string, q *quantizer.Quantizer, stats *aq.SearchStats, elapsed time.Duration) {
	min, max := minMaxRawField(q)
	fmt.Println()
	fmt.Println("jxlaq estimate report")
	fmt.Printf("  input:         %s\n", path)
	fmt.Printf("  quant range:   %d ... %d\n", min, max)
	fmt.Printf("  dc quant:      %d\n", q.QuantDC())
	fmt.Printf("  iterations:    %d\n", stats.Counters["butteraugli_iters"])
	fmt.Printf("  elapsed:       %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

func minMaxRawField(q *quantizer.Quantizer) (min, max int32) {
	raw := q.RawQuantField()
	min, max = raw.At(0, 0), raw.At(0, 0)
	for y := 0; y < raw.YSize(); y++ {
		for _, v := range raw.ConstRow(y) {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return
}
