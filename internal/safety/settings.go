package safety

import "time"

const AutomaticExpirationReason = "automatic expiration"

// Messages are fmt templates. Staff messages are sent pre-formatted and are
// not decorated by the authority.
type Messages struct {
	// StaffActivated receives the player name, the activator and the reason.
	StaffActivated string
	// StaffDeactivated receives the player name and the reason.
	StaffDeactivated string
	// PlayerActivated receives the activator.
	PlayerActivated string
	// PlayerDeactivated receives the reason.
	PlayerDeactivated string
}

type Settings struct {
	Mode Mode
	// ActiveDuration is how long the mode lasts before the sweep ends it. Zero disables expiry.
	ActiveDuration time.Duration
	// Cooldown is the minimum time between a deactivation and the next activation.
	Cooldown time.Duration
	Messages Messages
}

func PanicSettings(activeDuration, cooldown time.Duration) Settings {
	return Settings{
		Mode:           ModePanic,
		ActiveDuration: activeDuration,
		Cooldown:       cooldown,
		Messages: Messages{
			StaffActivated:    "&c&l[PANIC] &r&c%s activated panic mode (by %s): %s",
			StaffDeactivated:  "&c&l[PANIC] &r&7Panic mode for %s ended: %s",
			PlayerActivated:   "&cPanic mode activated by %s. Staff have been alerted and you cannot move or interact.",
			PlayerDeactivated: "&aPanic mode ended: %s",
		},
	}
}

func FreezeSettings(activeDuration time.Duration) Settings {
	return Settings{
		Mode:           ModeFreeze,
		ActiveDuration: activeDuration,
		Messages: Messages{
			StaffActivated:    "&b&l[FREEZE] &r&b%s was frozen by %s: %s",
			StaffDeactivated:  "&b&l[FREEZE] &r&7%s is no longer frozen: %s",
			PlayerActivated:   "&bYou have been frozen by %s. Do not log out.",
			PlayerDeactivated: "&aYou are no longer frozen: %s",
		},
	}
}
