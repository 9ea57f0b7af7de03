// Package shortcode 生成取件码：定长、字母数字、密码学安全随机.
// 取件码即能力令牌，不可猜测性是安全属性而非便利属性，因此熵源必须是 crypto/rand.
package shortcode

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet 取件码字符集，大小写字母加数字.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength 默认取件码长度.
const DefaultLength = 6

// Generator 取件码生成器，无副作用，可并发使用.
type Generator struct {
	length int
}

// New 创建指定长度的生成器，length <= 0 时使用默认长度.
func New(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}

	return &Generator{length: length}
}

// Length 返回生成的取件码长度.
func (g *Generator) Length() int {
	return g.length
}

// Generate 生成一个取件码.
// 均匀采样字符集；唯一性由调用方对照注册表确认，这里只保证随机性.
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, g.length)

	for i := range buf {
		n, err := crand.Int(crand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}

		buf[i] = Alphabet[n.Int64()]
	}

	return string(buf), nil
}
