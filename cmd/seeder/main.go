package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cuescore/cuescore/internal/auth"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "AUTH_JWT_SECRET"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedUser struct {
	ID   string
	Name string
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	now := time.Now()
	users := []seedUser{
		{ID: "seed-user-1", Name: "Seeder Player A"},
		{ID: "seed-user-2", Name: "Seeder Player B"},
		{ID: "seed-user-3", Name: "Seeder Player C"},
		{ID: "seed-user-4", Name: "Seeder Player D"},
	}

	for _, u := range users {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO users (id, display_name, display_name_lower, email, created_at) VALUES (?, ?, ?, ?, ?)",
			u.ID, u.Name, strings.ToLower(u.Name), u.ID+"@example.com", now.Unix(),
		)
		if err != nil {
			log.Fatalf("Failed to insert dummy user %s: %s", u.Name, err)
		}
	}
	log.Info("Ensured dummy users exist.")

	groupID := "seed-group"
	memberIDs := make([]string, 0, len(users))
	for _, u := range users {
		memberIDs = append(memberIDs, u.ID)
	}
	memberIDsJSON, _ := json.Marshal(memberIDs)
	_, err = db.Exec(
		"INSERT OR IGNORE INTO groups (id, name, created_by, created_at, member_ids_json) VALUES (?, ?, ?, ?, ?)",
		groupID, "Seeded League", users[0].ID, now.Unix(), string(memberIDsJSON),
	)
	if err != nil {
		log.Fatalf("Failed to insert dummy group: %s", err)
	}
	for _, u := range users {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO group_members (id, group_id, user_id, user_name, joined_at) VALUES (?, ?, ?, ?, ?)",
			groupID+"_"+u.ID, groupID, u.ID, u.Name, now.Unix(),
		)
		if err != nil {
			log.Fatalf("Failed to insert dummy member %s: %s", u.Name, err)
		}
	}
	log.Info("Ensured dummy group exists.", "groupID", groupID)

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*12) // 12 columns per match

	for i := 0; i < numMatches; i++ {
		matchTime := now.Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		// Random 2v2 split of the four seeded players.
		perm := rand.Perm(len(users))
		teamA := []string{users[perm[0]].ID, users[perm[1]].ID}
		teamB := []string{users[perm[2]].ID, users[perm[3]].ID}
		teamANames := []string{users[perm[0]].Name, users[perm[1]].Name}
		teamBNames := []string{users[perm[2]].Name, users[perm[3]].Name}
		winner := "A"
		if rand.Intn(2) == 1 {
			winner = "B"
		}

		teamAJSON, _ := json.Marshal(teamA)
		teamBJSON, _ := json.Marshal(teamB)
		teamANamesJSON, _ := json.Marshal(teamANames)
		teamBNamesJSON, _ := json.Marshal(teamBNames)
		allPlayersJSON, _ := json.Marshal(append(append([]string{}, teamA...), teamB...))

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			groupID,
			string(teamAJSON),
			string(teamBJSON),
			string(teamANamesJSON),
			string(teamBNamesJSON),
			winner,
			matchTime.Unix(),
			matchTime.Unix(),
			teamA[0],
			2, // losing team always has two players
			string(allPlayersJSON),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO group_matches (id, group_id, team_a_json, team_b_json, team_a_names_json,
					team_b_names_json, winning_team, match_date, created_at, created_by,
					points_awarded, all_player_ids_json)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*12)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)

	// A dev token for poking the authed endpoints with the CLI.
	verifier := auth.NewVerifier(cfg["AUTH_JWT_SECRET"])
	devToken, err := verifier.Issue(users[0].ID, users[0].Name, 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to issue dev token: %s", err)
	}
	fmt.Println("Dev token for", users[0].ID+":", devToken)
}
