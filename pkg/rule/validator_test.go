package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/filegate/pkg/rule"
)

// BotSettings 用于测试 ValidateStruct，结构与实际 Bot 配置保持一致.
type BotSettings struct {
	Token      string `rule:"required"`
	CodeLength int    `rule:"min=4,max=16"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	// 有效结构体
	validStruct := BotSettings{Token: "123456:ABC-DEF", CodeLength: 6}

	err := rule.ValidateStruct(validStruct)
	if err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 无效结构体：缺少 Token
	invalidStruct1 := BotSettings{Token: "", CodeLength: 6}

	err = rule.ValidateStruct(invalidStruct1)
	if err == nil {
		t.Error("Expected error for invalid struct (missing token), got nil")
	}

	// 无效结构体：CodeLength 小于 4
	invalidStruct2 := BotSettings{Token: "123456:ABC-DEF", CodeLength: 2}

	err = rule.ValidateStruct(invalidStruct2)
	if err == nil {
		t.Error("Expected error for invalid struct (code length < 4), got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	// 有效 hostname_port
	err := rule.ValidateVar("localhost:6379", "hostname_port")
	if err != nil {
		t.Errorf("Expected no error for valid addr, got %v", err)
	}

	// 有效数字
	err = rule.ValidateVar(6, "min=4,max=16")
	if err != nil {
		t.Errorf("Expected no error for valid number, got %v", err)
	}

	// 无效数字
	err = rule.ValidateVar(17, "min=4,max=16")
	if err == nil {
		t.Error("Expected error for invalid number, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	// 注册自定义验证：检查字符串是否为合法频道标识（@handle 或数字 ID）
	err := rule.RegisterValidation("channel_id", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		if str == "" {
			return true // 为空表示关闭门禁
		}

		if str[0] == '@' {
			return len(str) > 1
		}

		for i, r := range str {
			if i == 0 && r == '-' {
				continue
			}

			if r < '0' || r > '9' {
				return false
			}
		}

		return true
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	if err := rule.ValidateVar("@my_channel", "channel_id"); err != nil {
		t.Errorf("Expected no error for @handle channel, got %v", err)
	}

	if err := rule.ValidateVar("-100123456789", "channel_id"); err != nil {
		t.Errorf("Expected no error for numeric channel, got %v", err)
	}

	if err := rule.ValidateVar("not a channel", "channel_id"); err == nil {
		t.Error("Expected error for invalid channel id, got nil")
	}
}

// TestRegisterAlias 测试注册别名.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("code_length", "min=4,max=16")

	err := rule.ValidateVar(8, "code_length")
	if err != nil {
		t.Errorf("Expected no error for valid length with alias, got %v", err)
	}

	err = rule.ValidateVar(3, "code_length")
	if err == nil {
		t.Error("Expected error for invalid length with alias, got nil")
	}
}
