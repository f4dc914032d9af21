package events

// Section groups catalog slots the way the sound designer lays them out.
type Section string

const (
	SectionAmbients Section = "Ambients"
	SectionEnemies  Section = "Enemies"
	SectionMusic    Section = "Music"
	SectionPlayer   Section = "Player"
	SectionProps    Section = "Props"
	SectionUI       Section = "UI"
)

// Catalog slot names.
const (
	AmbientSound = "ambientSound"

	BossAttackSound        = "bossAttackSound"
	BossChangeElementSound = "bossChangeElementSound"
	BossDeathSound         = "bossDeathSound"
	BatAttack              = "batAttack"
	PlantAttack            = "plantAttack"
	RatAttack              = "ratAttack"
	EnemyDeath             = "enemyDeath"

	AllMusic  = "allMusic"
	BossMusic = "bossMusic"

	PlayerFootsteps   = "playerFootsteps"
	PlayerAttackSound = "playerAttackSound"
	PlayerDamageSound = "playerDamageSound"

	DoorOpen  = "doorOpen"
	DoorClose = "doorClose"

	UIButtonClick   = "uiButtonClick"
	UIButtonSelect  = "uiButtonSelect"
	UISelectAbility = "uiSelectAbility"
	UIChangeElement = "uiChangeElement"
	UIBuyItem       = "uiBuyItem"
	UIGetCoin       = "uiGetCoin"
)

// Slot describes one named event the game expects to be bound.
type Slot struct {
	Name     string
	Section  Section
	Required bool
}

// catalog lists every known slot. Required slots are the ones the playback
// manager needs at session start.
var catalog = []Slot{
	{Name: AmbientSound, Section: SectionAmbients, Required: true},

	{Name: BossAttackSound, Section: SectionEnemies},
	{Name: BossChangeElementSound, Section: SectionEnemies},
	{Name: BossDeathSound, Section: SectionEnemies},
	{Name: BatAttack, Section: SectionEnemies},
	{Name: PlantAttack, Section: SectionEnemies},
	{Name: RatAttack, Section: SectionEnemies},
	{Name: EnemyDeath, Section: SectionEnemies},

	{Name: AllMusic, Section: SectionMusic, Required: true},
	{Name: BossMusic, Section: SectionMusic},

	{Name: PlayerFootsteps, Section: SectionPlayer},
	{Name: PlayerAttackSound, Section: SectionPlayer},
	{Name: PlayerDamageSound, Section: SectionPlayer},

	{Name: DoorOpen, Section: SectionProps},
	{Name: DoorClose, Section: SectionProps},

	{Name: UIButtonClick, Section: SectionUI},
	{Name: UIButtonSelect, Section: SectionUI},
	{Name: UISelectAbility, Section: SectionUI},
	{Name: UIChangeElement, Section: SectionUI},
	{Name: UIBuyItem, Section: SectionUI},
	{Name: UIGetCoin, Section: SectionUI},
}

// Catalog returns a copy of the known slot list in section order.
func Catalog() []Slot {
	out := make([]Slot, len(catalog))
	copy(out, catalog)
	return out
}

// LookupSlot returns the catalog entry for name.
func LookupSlot(name string) (Slot, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// RequiredSlots returns the names of all required slots.
func RequiredSlots() []string {
	var names []string
	for _, s := range catalog {
		if s.Required {
			names = append(names, s.Name)
		}
	}
	return names
}
