package agent

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes the on-chain agent this server fronts.
type Profile struct {
	Name          string `yaml:"name"`
	Model         string `yaml:"model"`
	WalletAddress string `yaml:"wallet_address"`
	Network       string `yaml:"network"`
	SystemPrompt  string `yaml:"system_prompt"`
}

func LoadProfile(path string) (Profile, error) {
	var profile Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, err
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, err
	}
	return profile, nil
}
