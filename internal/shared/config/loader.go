package config

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var mu sync.RWMutex

// Read runs fn while holding the read side of the reload lock.
func Read(fn func()) {
	mu.RLock()
	defer mu.RUnlock()
	fn()
}

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := newViper(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("config file changed: %s", e.Name)
		if err := reload(v, out); err != nil {
			log.Printf("config reload rejected, keeping previous values: %v", err)
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := reload(v, out); err != nil {
		panic(err)
	}
}

// validator is implemented by config types that can reject a decoded value.
type validator interface {
	Validate() error
}

// reload decodes v into a fresh value of out's type and swaps it into out only
// when decoding and validation succeed. out must be a non-nil struct pointer.
func reload(v *viper.Viper, out any) error {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("config target must be a non-nil pointer, got %T", out)
	}
	fresh := reflect.New(target.Elem().Type())
	if err := unmarshal(v, fresh.Interface()); err != nil {
		return err
	}
	if val, ok := fresh.Interface().(validator); ok {
		if err := val.Validate(); err != nil {
			return err
		}
	}
	mu.Lock()
	defer mu.Unlock()
	target.Elem().Set(fresh.Elem())
	return nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper, out any) error {
	return v.Unmarshal(out, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
