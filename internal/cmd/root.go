package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/noisefield/internal/config"
)

var (
	cfgFile string
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "noisefield",
	Short: "A procedural noise field generator",
	Long: `NoiseField evaluates procedural scalar fields built from value, gradient,
simplex, white and cellular noise, combined through fbm, turbulence and
ridged multifractal compositors and an optional domain warp.

Fields can be rendered to PNG or TIFF images or sampled at single coordinates.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./noisefield.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("field-file", "", "Field description written by 'noisefield config'; replaces the field flags")
	for key, name := range map[string]string{"verbose": "verbose", "fieldfile": "field-file"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
		}
	}

	addFieldFlags(rootCmd)
}

// addFieldFlags registers the field description flags shared by every
// subcommand. Defaults mirror config.Default so that a config file overrides
// them and explicit flags override the file.
func addFieldFlags(cmd *cobra.Command) {
	d := config.Default()
	flags := cmd.PersistentFlags()

	flags.String("kind", d.Kind, "Field kind (kernel, fractal, warp)")
	flags.Int("width", d.Width, "Field width in pixels")
	flags.Int("height", d.Height, "Field height in pixels")
	flags.Int64("seed", d.Fractal.Seed, "Deterministic seed")
	flags.Float64("scale", d.Fractal.Scale, "Lattice cells spanned by the field width")
	flags.Bool("get-noise", false, "Output raw noise values instead of gray levels")

	flags.String("variant", d.Kernel.Variant, "Kernel variant (value, perlin, simplex, white, worley, opensimplex, classic)")

	flags.String("fractal", d.Fractal.Fractal, "Fractal kind (fbm, turbulence, ridged)")
	flags.String("noise-gen", d.Fractal.NoiseGen, "Fractal octave kernel (perlin, worley, white)")
	flags.Int("octaves", d.Fractal.Octaves, "Number of octaves")
	flags.Float64("persistence", d.Fractal.Persistence, "Amplitude decay per octave")
	flags.Float64("lacunarity", d.Fractal.Lacunarity, "Frequency growth per octave")
	flags.Float64("amplitude", d.Fractal.InitialAmplitude, "Initial amplitude")
	flags.Float64("frequency", d.Fractal.InitialFrequency, "Initial frequency")
	flags.Bool("colored", false, "Remap each color channel to its palette range")

	flags.Int("points", 0, "Worley feature points (default: width/3)")
	flags.Bool("three-d", false, "Scatter Worley feature points in 3D")
	flags.String("distance", "euclidean", "Worley distance metric (euclidean, manhattan, chebyshev)")
	flags.String("worley-type", "f1", "Worley match type (f1, f2, \"f2 - f1\")")

	flags.Float64("q", d.Warp.QMultiplier, "Domain warp first-level multiplier")
	flags.Float64("r", d.Warp.RMultiplier, "Domain warp second-level multiplier")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"field.kind", "kind"},
		{"field.width", "width"},
		{"field.height", "height"},
		{"field.getnoise", "get-noise"},
		{"field.kernel.seed", "seed"},
		{"field.kernel.scale", "scale"},
		{"field.kernel.variant", "variant"},
		{"field.kernel.worley.numberofpoints", "points"},
		{"field.kernel.worley.threedimensions", "three-d"},
		{"field.kernel.worley.distance", "distance"},
		{"field.kernel.worley.type", "worley-type"},
		{"field.fractal.seed", "seed"},
		{"field.fractal.scale", "scale"},
		{"field.fractal.getnoise", "get-noise"},
		{"field.fractal.fractal", "fractal"},
		{"field.fractal.noisegen", "noise-gen"},
		{"field.fractal.octaves", "octaves"},
		{"field.fractal.persistence", "persistence"},
		{"field.fractal.lacunarity", "lacunarity"},
		{"field.fractal.initialamplitude", "amplitude"},
		{"field.fractal.initialfrequency", "frequency"},
		{"field.fractal.colored", "colored"},
		{"field.fractal.worley.numberofpoints", "points"},
		{"field.fractal.worley.threedimensions", "three-d"},
		{"field.fractal.worley.distance", "distance"},
		{"field.fractal.worley.type", "worley-type"},
		{"field.warp.qmultiplier", "q"},
		{"field.warp.rmultiplier", "r"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, flags.Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("noisefield")
	}

	viper.SetEnvPrefix("NOISEFIELD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func initLogging() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(rootCmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// fieldConfig resolves the field description. A field file is used as is;
// otherwise defaults, the config file, the environment and flags apply, in
// increasing precedence.
func fieldConfig() (config.Field, error) {
	if path := viper.GetString("fieldfile"); path != "" {
		return config.LoadFile(path)
	}

	settings := struct {
		Field config.Field `mapstructure:"field"`
	}{Field: config.Default()}

	if err := viper.Unmarshal(&settings); err != nil {
		return config.Field{}, fmt.Errorf("failed to read field config: %w", err)
	}
	return settings.Field, nil
}
