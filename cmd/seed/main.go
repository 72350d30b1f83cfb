// Command seed loads competitions, identifier fields and questions from a
// JSON fixture into the database. Host tooling for standing up a
// competition; the server never writes any of these rows itself.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/config"
	"github.com/WildHonestFur/Quantix-Arena/internal/database"
	"github.com/WildHonestFur/Quantix-Arena/internal/models"
	"github.com/WildHonestFur/Quantix-Arena/internal/services"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

type fixture struct {
	Competitions []competitionFixture `json:"competitions"`
}

type competitionFixture struct {
	Name             string            `json:"name"`
	Code             string            `json:"code"`
	StartAt          time.Time         `json:"start_at"`
	EndAt            time.Time         `json:"end_at"`
	ReleasedScores   bool              `json:"released_scores"`
	IdentifierFields []fieldFixture    `json:"identifier_fields"`
	Questions        []questionFixture `json:"questions"`
}

type fieldFixture struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

type questionFixture struct {
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Diagram string   `json:"diagram"`
	Answer  string   `json:"answer"`
	Points  int      `json:"points"`
	Options []string `json:"options"`
}

func main() {
	file := flag.String("file", "seed.json", "fixture file to load")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}

	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}

	cfg := config.Load()
	db := database.Connect(cfg)
	database.AutoMigrate(db)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Competition", "Code", "Start", "End", "Fields", "Questions"})

	for _, cf := range fx.Competitions {
		if !cf.StartAt.Before(cf.EndAt) {
			log.Fatalf("competition %q: start_at must precede end_at", cf.Name)
		}

		competition := models.Competition{
			Name:           cf.Name,
			Code:           services.NormalizeCode(cf.Code),
			StartAt:        cf.StartAt,
			EndAt:          cf.EndAt,
			ReleasedScores: cf.ReleasedScores,
		}
		if err := db.Create(&competition).Error; err != nil {
			log.Fatalf("create competition %q: %v", cf.Name, err)
		}

		for i, ff := range cf.IdentifierFields {
			field := models.IdentifierField{
				CompetitionID: competition.ID,
				Name:          ff.Name,
				Pattern:       ff.Pattern,
				OrderNum:      i,
			}
			if err := db.Create(&field).Error; err != nil {
				log.Fatalf("create field %q: %v", ff.Name, err)
			}
		}

		for i, qf := range cf.Questions {
			if qf.Type != models.QuestionTypeMCQ && qf.Type != models.QuestionTypeFill {
				log.Fatalf("competition %q question %d: unknown type %q", cf.Name, i+1, qf.Type)
			}
			question := models.Question{
				CompetitionID: competition.ID,
				Type:          qf.Type,
				Text:          qf.Text,
				Diagram:       qf.Diagram,
				Answer:        qf.Answer,
				Points:        qf.Points,
				OrderNum:      i,
			}
			if err := db.Create(&question).Error; err != nil {
				log.Fatalf("create question %d: %v", i+1, err)
			}
			for j, opt := range qf.Options {
				option := models.Option{QuestionID: question.ID, Text: opt, OrderNum: j}
				if err := db.Create(&option).Error; err != nil {
					log.Fatalf("create option %q: %v", opt, err)
				}
			}
		}

		table.Append([]string{
			cf.Name,
			competition.Code,
			cf.StartAt.Format(time.RFC3339),
			cf.EndAt.Format(time.RFC3339),
			fmt.Sprintf("%d", len(cf.IdentifierFields)),
			fmt.Sprintf("%d", len(cf.Questions)),
		})
	}

	color.Green("seeded %d competition(s) from %s", len(fx.Competitions), *file)
	table.Render()
}
