package main

import (
	"io/ioutil"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/hivellm/go-vectorizer"
)

// duration lets timeouts appear in YAML as strings like "30s".
type duration time.Duration

func (d *duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Config is the CLI configuration file:
//
//	vectorizer:
//	  master: http://vectorizer-master:15001
//	  replicas:
//	    - http://vectorizer-replica-1:15001
//	    - http://vectorizer-replica-2:15001
//	  read_preference: replica
//	  api_key: secret
//	  timeout: 30s
type Config struct {
	Vectorizer struct {
		Master         string                    `yaml:"master"`
		Replicas       []string                  `yaml:"replicas"`
		ReadPreference vectorizer.ReadPreference `yaml:"read_preference"`
		APIKey         string                    `yaml:"api_key"`
		Timeout        duration                  `yaml:"timeout"`
	} `yaml:"vectorizer"`
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
