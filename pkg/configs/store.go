package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultStoreURI            = "mongodb://localhost:27017" // 默认文档存储地址
	DefaultStoreDatabase       = "filegate"                  // 默认数据库名称
	DefaultStoreCollection     = "files"                     // 默认集合名称
	DefaultStoreConnectTimeout = 10                          // 连接超时，单位秒
	DefaultStoreOpTimeout      = 5                           // 单次读写超时，单位秒
)

type (
	// StoreConfig 文档存储（MongoDB）配置.
	// 存储引擎本身是外部协作方，这里只描述连接参数.
	StoreConfig struct {
		URI            string `mapstructure:"uri"             rule:"required"`
		Database       string `mapstructure:"database"        rule:"required"`
		Collection     string `mapstructure:"collection"      rule:"required"`
		ConnectTimeout int    `mapstructure:"connect_timeout" rule:"min=1,max=120"`
		OpTimeout      int    `mapstructure:"op_timeout"      rule:"min=1,max=60"`
	}
)

// GetConnectTimeout 返回连接超时作为time.Duration.
func (c *StoreConfig) GetConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeout) * time.Second
}

// GetOpTimeout 返回读写超时作为time.Duration.
func (c *StoreConfig) GetOpTimeout() time.Duration {
	return time.Duration(c.OpTimeout) * time.Second
}

// setDefaults 设置文档存储配置的默认值.
func (c *StoreConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("store.uri", DefaultStoreURI)
	v.SetDefault("store.database", DefaultStoreDatabase)
	v.SetDefault("store.collection", DefaultStoreCollection)
	v.SetDefault("store.connect_timeout", DefaultStoreConnectTimeout)
	v.SetDefault("store.op_timeout", DefaultStoreOpTimeout)
}
