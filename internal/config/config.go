package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// AdminPass is the shared admin passphrase. AdminPassHash, when set,
	// takes precedence and holds a bcrypt hash of the passphrase.
	AdminPass     string `mapstructure:"admin_pass" yaml:"admin_pass"`
	AdminPassHash string `mapstructure:"admin_pass_hash" yaml:"admin_pass_hash"`

	// AdminNames is the pool of codenames handed to admins on login.
	AdminNames []string `mapstructure:"admin_names" yaml:"admin_names"`
}

// DefaultAdminNames is the stock codename pool for admin sessions.
var DefaultAdminNames = []string{
	"Shield", "Sword", "Spear", "Bow", "Axe", "Mace", "Hammer", "Crossbow", "Dagger", "Lance",
	"Flail", "Pike", "Halberd", "Sabre", "Katana", "Claymore", "Longsword", "Falchion", "Warhammer", "Trident",
	"Rapier", "Scimitar", "Maul", "Greatsword", "Arbalest", "Ballista", "Catapult", "Trebuchet", "Cannon", "Musket",
	"Blunderbuss", "Flintlock", "Rifle", "Carbine", "Revolver", "Pistol", "SMG", "Shotgun", "Sniper", "Grenade",
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DatabasePath:      "supportchat.db",
		LogLevel:          "info",
		AdminNames:        DefaultAdminNames,
	}
}
