package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// ProviderGemini 直接调用 Gemini generateContent 接口
	ProviderGemini = "gemini"
	// ProviderOpenAI 通过 eino 调用 OpenAI 兼容接口
	ProviderOpenAI = "openai"

	// ModeModel 由大模型生成报告
	ModeModel = "model"
	// ModeMock 使用模板拼装报告，不调用外部接口
	ModeMock = "mock"
)

// Bootstrap 项目配置结构体
type Bootstrap struct {
	App    *App    `yaml:"app"`
	Server *Server `yaml:"server"`
	Model  *Model  `yaml:"model"`
	Report *Report `yaml:"report"`
	Log    *Log    `yaml:"log"`
}

// App 应用信息
type App struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

// Server 服务监听相关配置
type Server struct {
	Http *HTTP `yaml:"http"`
	Cors *CORS `yaml:"cors"`
}

type HTTP struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// CORS 跨域配置
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Model 大模型相关配置
type Model struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Name     string `yaml:"name"`
}

// Report 报告生成方式
type Report struct {
	Mode string `yaml:"mode"`
}

// Log 日志相关配置
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load 从指定路径加载配置，并补齐默认值与环境变量覆盖
func Load(path string) (*Bootstrap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 YAML 配置内容
func Parse(data []byte) (*Bootstrap, error) {
	var bc Bootstrap
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	bc.setDefaults()
	bc.applyEnv()
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	return &bc, nil
}

// Default 返回全部使用默认值的配置
func Default() *Bootstrap {
	bc := &Bootstrap{}
	bc.setDefaults()
	return bc
}

func (bc *Bootstrap) setDefaults() {
	if bc.App == nil {
		bc.App = &App{}
	}
	if bc.App.Name == "" {
		bc.App.Name = "Report Scribe API"
	}
	if bc.App.Version == "" {
		bc.App.Version = "1.0.0"
	}
	if bc.App.Env == "" {
		bc.App.Env = "development"
	}

	if bc.Server == nil {
		bc.Server = &Server{}
	}
	if bc.Server.Http == nil {
		bc.Server.Http = &HTTP{}
	}
	if bc.Server.Http.Addr == "" {
		bc.Server.Http.Addr = "0.0.0.0:8000"
	}
	if bc.Server.Http.Timeout == "" {
		bc.Server.Http.Timeout = "60s"
	}
	if bc.Server.Cors == nil {
		bc.Server.Cors = &CORS{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		}
	}

	if bc.Model == nil {
		bc.Model = &Model{}
	}
	if bc.Model.Provider == "" {
		bc.Model.Provider = ProviderGemini
	}

	if bc.Report == nil {
		bc.Report = &Report{}
	}
	if bc.Report.Mode == "" {
		bc.Report.Mode = ModeModel
	}

	if bc.Log == nil {
		bc.Log = &Log{Level: "info"}
	}
}

// applyEnv 环境变量优先于配置文件，API Key 一般不写进文件
func (bc *Bootstrap) applyEnv() {
	// GEMINI_API_KEY 只对 gemini 生效，避免把 Gemini 凭证发给其他服务商
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && bc.Model.Provider == ProviderGemini {
		bc.Model.APIKey = v
	}
	if v := os.Getenv("REPORT_SCRIBE_API_KEY"); v != "" {
		bc.Model.APIKey = v
	}
	if v := os.Getenv("REPORT_SCRIBE_ENV"); v != "" {
		bc.App.Env = v
	}
	if v := os.Getenv("REPORT_SCRIBE_ADDR"); v != "" {
		bc.Server.Http.Addr = v
	}
	if v := os.Getenv("REPORT_SCRIBE_MODE"); v != "" {
		bc.Report.Mode = v
	}
}

// Validate 校验枚举类配置项；API Key 缺失不在此处报错，由调用时返回配置错误
func (bc *Bootstrap) Validate() error {
	switch bc.Model.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown model provider: %s", bc.Model.Provider)
	}
	switch bc.Report.Mode {
	case ModeModel, ModeMock:
	default:
		return fmt.Errorf("unknown report mode: %s", bc.Report.Mode)
	}
	return nil
}
