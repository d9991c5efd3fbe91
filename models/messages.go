package models

import (
	"strconv"
	"strings"
)

// Flavor text pools for announcements and claim responses. Same shape as the
// original message config: one random line per event.

var AppearanceMessages = []string{
	"🐟 A fish just swam into the server! Quick, catch it!",
	"🐟 Look! A fish appeared! Don't let it get away!",
	"🐟 Fish alert! A fish has been spotted in the wild!",
	"🐟 Splash! A fish is here! Catch it before it swims away!",
	"🐟 A wild fish appeared! It looks confused!",
	"🐟 BING BONG! Fish in the channel!",
	"🐟 Fish delivery! Fresh fish just arrived!",
	"🐟 Fish-o-clock! Time to catch!",
}

var CatchMessages = []string{
	"**{user}** caught the {fish}! What a pro! 🐟",
	"**{user}** snagged that {fish} like a boss! 💪",
	"**{user}** is the fish master! Perfect catch! 🎯",
	"**{user}** caught it! That {fish} didn't stand a chance! 😎",
	"**{user}** with the epic catch! Legendary! 🌟",
	"**{user}** snagged the {fish}! Incredible reflexes! ⚡",
}

var LevelUpMessages = []string{
	"🎉 **LEVEL UP!** You're now level {level}!",
	"🌟 **PROMOTION!** Welcome to level {level}!",
	"⚡ **RANK UP!** You've reached level {level}!",
	"🏆 **ACHIEVEMENT!** Level {level} unlocked!",
	"🚀 **ASCENSION!** Level {level} reached!",
}

// RenderMessage substitutes {user}, {fish} and {level} placeholders.
func RenderMessage(template, user, fish string, level int) string {
	r := strings.NewReplacer(
		"{user}", user,
		"{fish}", fish,
		"{level}", strconv.Itoa(level),
	)
	return r.Replace(template)
}
