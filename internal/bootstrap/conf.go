package bootstrap

import (
	"codepad-server/internal/conf"
	"codepad-server/utils"

	"github.com/sirupsen/logrus"
)

func initConf(path string) error {
	if err := conf.InitConfig(path); err != nil {
		return err
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		s, _ := utils.PrettyStruct(conf.Conf)
		logrus.Debugf("config loaded: %s", s)
	}
	return nil
}
