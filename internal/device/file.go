// Package device loads boot image files into memory. The parser core only
// consumes resident buffers, so this layer is the single place that touches
// the filesystem on the way in.
package device

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
)

// Config holds device-layer settings.
type Config struct {
	// MaxImageSize caps how many bytes Open will load. Boot partitions top
	// out well under 128MB on real devices; the cap keeps a mistyped path
	// to a disk device from swallowing all memory.
	MaxImageSize int64 `mapstructure:"max_image_size"`
	// OutputDir is the default destination for extracted payloads.
	OutputDir string `mapstructure:"output_dir"`
}

// LoadConfig loads device configuration using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("bootimg-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.bootimg")
	v.AddConfigPath("/etc/bootimg")

	v.SetDefault("max_image_size", int64(256*1024*1024))
	v.SetDefault("output_dir", ".")

	v.SetEnvPrefix("BOOTIMG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// ImageFile is a boot image read fully into memory.
type ImageFile struct {
	path string
	data []byte
}

// Open reads the file at path into memory. A nil config uses LoadConfig.
func Open(path string, config *Config) (*ImageFile, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}
	if config == nil {
		loaded, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if config.MaxImageSize > 0 && stat.Size() > config.MaxImageSize {
		return nil, fmt.Errorf("image %s is %d bytes, over the %d byte limit",
			path, stat.Size(), config.MaxImageSize)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return &ImageFile{path: path, data: data}, nil
}

// Buffer returns the resident image bytes. The slice is the file content
// itself, not a copy; parsed descriptors alias it.
func (f *ImageFile) Buffer() []byte {
	return f.data
}

// Size returns the image length in bytes.
func (f *ImageFile) Size() int64 {
	return int64(len(f.data))
}

// Path returns the path the image was loaded from.
func (f *ImageFile) Path() string {
	return f.path
}
