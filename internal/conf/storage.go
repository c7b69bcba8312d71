package conf

// StorageConf 下载文件存储配置
type StorageConf struct {
	StoreDir    string `yaml:"store_dir" json:"store_dir"`       // 存储目录
	DBPath      string `yaml:"db_path" json:"db_path"`           // 数据库文件路径
	ArtifactTTL int    `yaml:"artifact_ttl" json:"artifact_ttl"` // seconds 未下载文件的保留时间，0 为默认值，负数不过期
}

// Default 设置默认配置
func (s *StorageConf) Default() {
	if s.StoreDir == "" {
		s.StoreDir = "./storage/files"
	}
	if s.DBPath == "" {
		s.DBPath = "./storage/metadata.db"
	}
	if s.ArtifactTTL == 0 {
		s.ArtifactTTL = 600
	}
}
