package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config cango 项目配置
type Config struct {
	Project   ProjectConfig   `toml:"project"`
	Translate TranslateConfig `toml:"translate"`
}

// ProjectConfig 项目配置
type ProjectConfig struct {
	Package string `toml:"package"` // 生成代码的包名
	Entry   string `toml:"entry"`   // 入口函数名
}

// TranslateConfig 翻译策略配置
type TranslateConfig struct {
	Pointers  string `toml:"pointers"`  // 指针表示策略：auto / slice
	Bitfields string `toml:"bitfields"` // 位域打包策略名
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Package: "main",
			Entry:   "main",
		},
		Translate: TranslateConfig{
			Pointers:  "auto",
			Bitfields: "msb-first",
		},
	}
}

// FindAndLoad 从指定目录向上查找 cango.toml 并加载
func FindAndLoad(startDir string) (*Config, string, error) {
	configPath := FindConfigFile(startDir)
	if configPath == "" {
		// 没找到配置文件，返回默认配置
		return DefaultConfig(), "", nil
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

// FindConfigFile 从指定目录向上查找 cango.toml
func FindConfigFile(startDir string) string {
	dir := startDir

	for {
		configPath := filepath.Join(dir, "cango.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到根目录
			return ""
		}
		dir = parent
	}
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, err
	}

	if config.Project.Package == "" {
		config.Project.Package = "main"
	}
	if config.Project.Entry == "" {
		config.Project.Entry = "main"
	}
	if config.Translate.Pointers == "" {
		config.Translate.Pointers = "auto"
	}
	if config.Translate.Bitfields == "" {
		config.Translate.Bitfields = "msb-first"
	}

	return config, nil
}

// GetProjectRoot 获取项目根目录（cango.toml 所在目录）
func GetProjectRoot(configPath string) string {
	if configPath == "" {
		return ""
	}
	return filepath.Dir(configPath)
}
