package config

type Scenario struct {
	Name     string                   `yaml:"name"`
	Map      string                   `yaml:"map"`
	MapFile  string                   `yaml:"map_file"`
	Rules    Rules                    `yaml:"rules"`
	Factions map[string]FactionConfig `yaml:"factions"`
	Boost    BoostConfig              `yaml:"boost"`
	Trace    bool                     `yaml:"trace"`
}

type Rules struct {
	HitPoints   int `yaml:"hit_points"`
	AttackPower int `yaml:"attack_power"`
	MaxRounds   int `yaml:"max_rounds"`
}

// FactionConfig overrides the rules for one side; zero fields inherit them.
type FactionConfig struct {
	HitPoints   int `yaml:"hit_points"`
	AttackPower int `yaml:"attack_power"`
}

type BoostConfig struct {
	Faction string `yaml:"faction"`
	Workers int    `yaml:"workers"`
}

const (
	defaultHitPoints    = 200
	defaultAttackPower  = 3
	defaultBoostFaction = "elf"
	defaultWorkers      = 4
)

// Default is the classic ruleset with no map attached.
func Default() *Scenario {
	s := &Scenario{}
	s.applyDefaults()
	return s
}

func (s *Scenario) applyDefaults() {
	if s.Rules.HitPoints == 0 {
		s.Rules.HitPoints = defaultHitPoints
	}
	if s.Rules.AttackPower == 0 {
		s.Rules.AttackPower = defaultAttackPower
	}
	if s.Boost.Faction == "" {
		s.Boost.Faction = defaultBoostFaction
	}
	if s.Boost.Workers == 0 {
		s.Boost.Workers = defaultWorkers
	}
	if s.Factions == nil {
		s.Factions = map[string]FactionConfig{}
	}
}
