package gameresult

import (
	"encoding/json"
	"strconv"
	"strings"
)

// slotOrder backs the slot stack STAT: blocks are assigned from. Popping
// from the end yields the evaluator's top-down emission order: team1bot1,
// team2bot1, team1bot2, team2bot2. Implemented as an index into a fixed
// array rather than a general stack.
var slotOrder = [4]string{"team2bot2", "team1bot2", "team2bot1", "team1bot1"}

// Parse converts the evaluator's raw stdout/stderr lines into a fully
// populated NewGame: survival flags, winner, and additional_data. It never
// fails; storage errors are the caller's concern, not the parser's.
//
// stderr always contains at least one line, the sentinel "...". More than
// one line means the evaluator (or a bot it hosts) raised an exception, and
// the bugged-game fallback path is taken instead of the healthy line
// protocol.
func Parse(stdout, stderr []string, game *NewGame) {
	if len(stderr) > 1 {
		parseBugged(stderr, game)
		return
	}
	parseHealthy(stdout, game)
}

func parseBugged(stderr []string, game *NewGame) {
	botIDs := [4]string{game.Team1Bot1ID, game.Team1Bot2ID, game.Team2Bot1ID, game.Team2Bot2ID}

	var blamed string
	found := false
	for _, line := range stderr {
		for _, id := range botIDs {
			if id != "" && strings.Contains(line, id) {
				blamed = id
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	game.Team1Bot1Survived = true
	game.Team1Bot2Survived = true
	game.Team2Bot1Survived = true
	game.Team2Bot2Survived = true

	if found {
		switch blamed {
		case game.Team1Bot1ID:
			game.Team1Bot1Survived = false
			game.WinnerID = game.Team2ID
		case game.Team1Bot2ID:
			game.Team1Bot2Survived = false
			game.WinnerID = game.Team2ID
		case game.Team2Bot1ID:
			game.Team2Bot1Survived = false
			game.WinnerID = game.Team1ID
		case game.Team2Bot2ID:
			game.Team2Bot2Survived = false
			game.WinnerID = game.Team1ID
		}
	}

	blameID := "Unknown"
	if found {
		blameID = blamed
	}
	gameErr := GameError{
		Error:   strings.ReplaceAll(strings.Join(stderr, "\n"), `\`, `\\`),
		BlameID: blameID,
	}
	data, err := json.Marshal(gameErr)
	if err != nil {
		data = []byte(`{"error": "Error serializing"}`)
	}
	game.AdditionalData = string(data)
}

func parseHealthy(stdout []string, game *NewGame) {
	var rGreen, rBlue, rYellow, rCyan int
	var currentSlot string
	var lastL string
	nextSlot := len(slotOrder) - 1

	stats := make(map[string]*GamePlayerStats)

	for _, line := range stdout {
		if strings.Contains(line, "R ") {
			parts := strings.Split(line, " ")
			if len(parts) == 3 {
				score, _ := strconv.Atoi(parts[1])
				switch parts[2] {
				case "green":
					rGreen = score
				case "blue":
					rBlue = score
				case "yellow":
					rYellow = score
				case "cyan":
					rCyan = score
				}
			}
		}

		if strings.Contains(line, "L ") {
			lastL = line
		}

		if strings.Contains(line, "STAT: ") {
			if nextSlot >= 0 {
				currentSlot = slotOrder[nextSlot]
				nextSlot--
				stats[currentSlot] = &GamePlayerStats{}
			}
		}

		if currentSlot == "" {
			continue
		}
		parts := strings.Split(line, " ")
		if len(parts) != 2 {
			continue
		}
		stat, ok := stats[currentSlot]
		if !ok {
			continue
		}
		applyStat(stat, parts[0], parts[1])
	}

	game.Team1Bot1Survived = survived(stats, "team1bot1")
	game.Team1Bot2Survived = survived(stats, "team1bot2")
	game.Team2Bot1Survived = survived(stats, "team2bot1")
	game.Team2Bot2Survived = survived(stats, "team2bot2")

	switch {
	case game.Team1Bot1Survived && game.Team1Bot2Survived && !game.Team2Bot1Survived && !game.Team2Bot2Survived:
		game.WinnerID = game.Team1ID
	case game.Team1Bot1Survived && !game.Team1Bot2Survived && !game.Team2Bot1Survived && !game.Team2Bot2Survived:
		game.WinnerID = game.Team1ID
	case !game.Team1Bot1Survived && game.Team1Bot2Survived && !game.Team2Bot1Survived && !game.Team2Bot2Survived:
		game.WinnerID = game.Team1ID
	case !game.Team1Bot1Survived && !game.Team1Bot2Survived && game.Team2Bot1Survived && game.Team2Bot2Survived:
		game.WinnerID = game.Team2ID
	case !game.Team1Bot1Survived && !game.Team1Bot2Survived && game.Team2Bot1Survived && !game.Team2Bot2Survived:
		game.WinnerID = game.Team2ID
	case !game.Team1Bot1Survived && !game.Team1Bot2Survived && !game.Team2Bot1Survived && game.Team2Bot2Survived:
		game.WinnerID = game.Team2ID
	default:
		game.WinnerID = ""
	}

	if game.WinnerID == "" {
		t1Score := rYellow + rGreen
		t2Score := rBlue + rCyan
		if t1Score > t2Score {
			game.WinnerID = game.Team1ID
		} else {
			game.WinnerID = game.Team2ID
		}
	}

	if len(stats) == 0 && lastL != "" {
		parseBugged([]string{lastL}, game)
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		data = []byte(`{"error": "Error serializing"}`)
	}
	game.AdditionalData = string(data)
}

func survived(stats map[string]*GamePlayerStats, slot string) bool {
	s, ok := stats[slot]
	if !ok {
		return false
	}
	return s.Survived
}

func applyStat(stat *GamePlayerStats, key, value string) {
	switch key {
	case "turnsPlayed:":
		stat.TurnsPlayed = atoiOrZero(value)
	case "survive:":
		stat.Survived, _ = strconv.ParseBool(value)
	case "fleetGenerated:":
		stat.FleetGenerated = atoiOrZero(value)
	case "fleetLost:":
		stat.FleetLost = atoiOrZero(value)
	case "fleetReinforced:":
		stat.FleetReinforced = atoiOrZero(value)
	case "largestAttack:":
		stat.LargestAttack = atoiOrZero(value)
	case "largestLoss:":
		stat.LargestLoss = atoiOrZero(value)
	case "largestReinforcement:":
		stat.LargestReinforcement = atoiOrZero(value)
	case "planetsLost:":
		stat.PlanetsLost = atoiOrZero(value)
	case "planetsConquered:":
		stat.PlanetsConquered = atoiOrZero(value)
	case "planetsDefended:":
		stat.PlanetsDefended = atoiOrZero(value)
	case "planetsAttacked:":
		stat.PlanetsAttacked = atoiOrZero(value)
	case "numFleetLost:":
		stat.NumFleetLost = atoiOrZero(value)
	case "numFleetReinforced:":
		stat.NumFleetReinforced = atoiOrZero(value)
	case "numFleetGenerated:":
		stat.NumFleetGenerated = atoiOrZero(value)
	case "totalTroopsGenerated:":
		stat.TotalTroopsGenerated = atoiOrZero(value)
	}
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
