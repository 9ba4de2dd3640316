package cds

import "fmt"

type Config struct {
	// Workers — число горутин для перебора разбиений; 0 и 1 означают последовательный перебор.
	Workers int
}

func DefaultConfig() Config {
	return Config{Workers: 1}
}

func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf(
			"число воркеров должно быть >= 0 (получено %d)",
			c.Workers,
		)
	}
	return nil
}
