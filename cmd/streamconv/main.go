// Command streamconv runs a WAV file or a synthetic filter-design response
// through the streaming convolution engine, block by block, and writes
// the result to a second WAV file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/youpy/go-wav"

	"github.com/aeyoll/streamconv"
	"github.com/aeyoll/streamconv/design"
	"github.com/aeyoll/streamconv/window"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("streamconv failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "streamconv",
		Short: "Streaming FFT-based convolution over WAV files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.AddCommand(newConvolveCmd())
	return root
}

type convolveOptions struct {
	input      string
	impulse    string
	output     string
	blockSize  int
	windowName string
	lowPass    float64
	highPass   float64
	bandLow    float64
	bandHigh   float64
	bandReject bool
}

func newConvolveCmd() *cobra.Command {
	opts := convolveOptions{blockSize: 1024, windowName: "blackman"}

	cmd := &cobra.Command{
		Use:   "convolve",
		Short: "Convolve a WAV file against an impulse response or a synthesized filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvolve(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.input, "input", "", "input WAV path (required)")
	flags.StringVar(&opts.impulse, "ir", "", "impulse response WAV path; when set, the filter-design and --window flags are ignored")
	flags.StringVar(&opts.output, "output", "", "output WAV path (required)")
	flags.IntVar(&opts.blockSize, "block-size", opts.blockSize, "samples per streaming block (power of two)")
	flags.StringVar(&opts.windowName, "window", opts.windowName, "kernel taper: "+availableWindows())
	flags.Float64Var(&opts.lowPass, "lowpass", 0, "low-pass cutoff as a fraction of sample rate (0, 0.5]")
	flags.Float64Var(&opts.highPass, "highpass", 0, "high-pass cutoff as a fraction of sample rate (0, 0.5]")
	flags.Float64Var(&opts.bandLow, "band-low", 0, "band filter low edge, used with --band-high")
	flags.Float64Var(&opts.bandHigh, "band-high", 0, "band filter high edge, used with --band-low")
	flags.BoolVar(&opts.bandReject, "band-reject", false, "reject (rather than pass) the [--band-low, --band-high] band")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func availableWindows() string {
	names := []string{"blackman", "hann", "hamming", "bartlett", "lanczos"}
	s := ""
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s
}

func runConvolve(opts convolveOptions) error {
	if opts.blockSize <= 0 || opts.blockSize%2 != 0 {
		return fmt.Errorf("--block-size must be a positive even number, got %d", opts.blockSize)
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	reader := wav.NewReader(in)
	format, err := reader.Format()
	if err != nil {
		return fmt.Errorf("read input format: %w", err)
	}
	log.Info().
		Uint16("channels", format.NumChannels).
		Uint32("sample_rate", format.SampleRate).
		Uint16("bits_per_sample", format.BitsPerSample).
		Msg("opened input")

	samples, err := readMonoSamples(reader)
	if err != nil {
		return fmt.Errorf("read input samples: %w", err)
	}

	conv, err := streamconv.NewConvolutionReal[float64](opts.blockSize)
	if err != nil {
		return fmt.Errorf("construct convolution engine: %w", err)
	}

	kernel := conv.NewFilterKernel()
	if err := installKernel(conv, kernel, opts); err != nil {
		return fmt.Errorf("install filter kernel: %w", err)
	}
	if err := conv.SetFilterKernel(kernel); err != nil {
		return fmt.Errorf("bind filter kernel: %w", err)
	}

	result, err := convolveAll(conv, samples)
	if err != nil {
		return fmt.Errorf("convolve: %w", err)
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	writer := wav.NewWriter(out, uint32(len(result)), format.NumChannels, format.SampleRate, format.BitsPerSample)
	return writeSamples(writer, result)
}

// readMonoSamples reads every sample of reader's first channel into
// memory. The other channels of multi-channel input are ignored, since
// one Convolution instance processes one stream.
func readMonoSamples(reader *wav.Reader) ([]float64, error) {
	var out []float64
	for {
		samples, err := reader.ReadSamples()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		for _, s := range samples {
			out = append(out, reader.FloatValue(s, 0))
		}
	}
}

// convolveAll drives the full mono signal through conv one block at a
// time, zero-padding the final partial block, then appends the drained
// overlap-add tail.
func convolveAll(conv *streamconv.ConvolutionReal[float64], samples []float64) ([]float64, error) {
	blockSize := conv.GetSize()
	in := make([]float64, blockSize)
	out := make([]float64, blockSize)
	result := make([]float64, 0, len(samples)+blockSize)

	for offset := 0; offset < len(samples); offset += blockSize {
		n := copy(in, samples[offset:])
		for i := n; i < blockSize; i++ {
			in[i] = 0
		}
		if err := conv.Convolve(in, out); err != nil {
			return nil, err
		}
		result = append(result, out...)
	}

	tail := make([]float64, conv.GetSize()/2)
	if err := conv.Drain(tail); err != nil {
		return nil, err
	}
	return append(result, tail...), nil
}

// installKernel fills kernel either by reading an impulse-response WAV
// file's first channel directly into the kernel's real samples, or by
// painting one of the filter-design shapes onto a FrequencyResponse and
// building the kernel from it via FilterKernel.SetFrequencyResponse.
func installKernel(conv *streamconv.ConvolutionReal[float64], kernel *streamconv.FilterKernel[float64], opts convolveOptions) error {
	if opts.impulse != "" {
		return loadImpulseResponse(kernel, opts.impulse)
	}

	win, err := window.NewNamed[float64](conv.GetWindowSize(), opts.windowName)
	if err != nil {
		return err
	}
	if err := kernel.SetWindow(win); err != nil {
		return err
	}

	fr := streamconv.NewFrequencyResponse[float64](conv)
	switch {
	case opts.bandLow > 0 || opts.bandHigh > 0:
		if opts.bandReject {
			return design.MakeBandReject(fr, kernel, opts.bandLow, opts.bandHigh)
		}
		return design.MakeBandPass(fr, kernel, opts.bandLow, opts.bandHigh)
	case opts.highPass > 0:
		return design.MakeHighPass(fr, kernel, opts.highPass)
	case opts.lowPass > 0:
		return design.MakeLowPass(fr, kernel, opts.lowPass)
	default:
		log.Warn().Msg("no impulse response or filter-design flags given; convolving with the identity kernel")
		return nil
	}
}

func loadImpulseResponse(kernel *streamconv.FilterKernel[float64], path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := wav.NewReader(f)
	if _, err := reader.Format(); err != nil {
		return err
	}

	kernel.FillAll(0, 0)
	limit := kernel.Size()
	i := 0
	for i < limit {
		samples, err := reader.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for _, s := range samples {
			if i >= limit {
				break
			}
			kernel.Real[i] = reader.FloatValue(s, 0)
			i++
		}
	}
	return nil
}

func writeSamples(writer *wav.Writer, samples []float64) error {
	wavSamples := make([]wav.Sample, len(samples))
	for i, v := range samples {
		clamped := int(v * 32767)
		if clamped > 32767 {
			clamped = 32767
		}
		if clamped < -32768 {
			clamped = -32768
		}
		wavSamples[i].Values[0] = clamped
	}
	return writer.WriteSamples(wavSamples)
}
