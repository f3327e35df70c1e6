package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"gopkg.in/yaml.v2"

	"github.com/spf13/viper"
)

// mkconfig генерирует стартовый configs/values_<env>.yaml из базового
// values_local.yaml. Новые окружения получают тот же набор ключей, что
// и локальный, с переопределениями из флагов.
func writeConfig(engine *viper.Viper, path string) error {
	bs, err := yaml.Marshal(engine.AllSettings())
	if err != nil {
		return errors.Wrap(err, "marshal config to yaml")
	}
	_ = os.Remove(path)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("create %s", path))
	}
	defer f.Close()
	if _, err = f.Write(bs); err != nil {
		_ = os.Remove(f.Name())
		return errors.Wrap(err, "write content")
	}
	return nil
}

func main() {
	var (
		env      = flag.String("env", "local", "environment suffix for the generated file")
		spot     = flag.String("spot", "", "override spot market instId")
		perp     = flag.String("perp", "", "override perp future instId")
		strategy = flag.String("strategy", "", "override strategy name")
	)
	flag.Parse()

	viper.SetConfigName("values_local")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	engine := viper.New()
	for key, val := range viper.AllSettings() {
		engine.Set(key, val)
	}
	if *spot != "" {
		engine.Set("spot_market", *spot)
	}
	if *perp != "" {
		engine.Set("perp_future", *perp)
	}
	if *strategy != "" {
		engine.Set("strategy", *strategy)
	}

	out := filepath.Join("configs", fmt.Sprintf("values_%s.yaml", *env))
	if err := writeConfig(engine, out); err != nil {
		panic(fmt.Errorf("can't generate result config: %w", err))
	}
	fmt.Printf("%s file complete\n", out)
	fmt.Println("done")
}
