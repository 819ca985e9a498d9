package params

import (
	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"

	"github.com/tourze/tron-api/log"
)

// WatchConfig reloads the config file on change until stopCh closes.
// A reload that fails its checks keeps the previous config.
func WatchConfig(configFile string, stopCh <-chan struct{}) error {
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	err = watch.Add(configFile)
	if err != nil {
		_ = watch.Close()
		return err
	}
	go startConfigWatcher(watch, configFile, stopCh)
	return nil
}

func startConfigWatcher(watch *fsnotify.Watcher, configFile string, stopCh <-chan struct{}) {
	log.Info("start config file watch", "configFile", configFile)
	defer func() {
		log.Info("stop config file watch", "configFile", configFile)
		_ = watch.Close()
	}()

	ops := []fsnotify.Op{
		fsnotify.Create,
		fsnotify.Write,
	}

	for {
		select {
		case <-stopCh:
			return
		case ev, ok := <-watch.Events:
			if !ok {
				return
			}
			log.Trace("config file watch event", "event", ev)
			for _, op := range ops {
				if ev.Op&op == op {
					if err := reloadConfig(ev.Name); err != nil {
						log.Warn("reload config failed, keep current", "configFile", ev.Name, "err", err)
					}
					break
				}
			}
		case werr, ok := <-watch.Errors:
			if !ok {
				return
			}
			log.Warn("config file watch error", "err", werr)
		}
	}
}

func reloadConfig(configFile string) error {
	config := &SDKConfig{}
	if _, err := toml.DecodeFile(configFile, &config); err != nil {
		return err
	}
	old := GetConfig()
	SetConfig(config)
	if err := CheckConfig(); err != nil {
		SetConfig(old)
		return err
	}
	log.Info("reload config success", "configFile", configFile)
	return nil
}
