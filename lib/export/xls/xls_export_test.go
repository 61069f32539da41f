package xlsexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ai-screening-backend/models"
	dbmodels "ai-screening-backend/models/db"
)

func TestExportScreeningReport(t *testing.T) {
	NewHandler()
	score := 70.0
	job := dbmodels.Job{Title: "Go разработчик"}
	list := []dbmodels.Application{
		{
			Candidate: &dbmodels.Candidate{
				FirstName: "Иван",
				LastName:  "Петров",
				Email:     "ivan@example.com",
				Phone:     "+79990000000",
			},
			ResumeScore:    85,
			Shortlisted:    true,
			InterviewScore: &score,
			Status:         models.ApplicationStatusReviewing,
		},
	}

	buf, err := Instance.ExportScreeningReport(job, list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	t.Run("sheet name check", func(t *testing.T) {
		require.Equal(t, []string{"Go разработчик"}, f.GetSheetList())
	})

	t.Run("header row check", func(t *testing.T) {
		for idx, header := range screeningHeaders {
			cell, err := excelize.CoordinatesToCellName(idx+1, 1)
			require.NoError(t, err)
			value, err := f.GetCellValue("Go разработчик", cell)
			require.NoError(t, err)
			require.Equal(t, header, value)
		}
	})

	t.Run("data row check", func(t *testing.T) {
		fio, err := f.GetCellValue("Go разработчик", "A2")
		require.NoError(t, err)
		require.Equal(t, "Петров Иван", fio)

		resumeScore, err := f.GetCellValue("Go разработчик", "C2")
		require.NoError(t, err)
		require.Equal(t, "85", resumeScore)

		shortlisted, err := f.GetCellValue("Go разработчик", "D2")
		require.NoError(t, err)
		require.Equal(t, "да", shortlisted)

		interviewScore, err := f.GetCellValue("Go разработчик", "E2")
		require.NoError(t, err)
		require.Equal(t, "70", interviewScore)

		status, err := f.GetCellValue("Go разработчик", "F2")
		require.NoError(t, err)
		require.Equal(t, string(models.ApplicationStatusReviewing), status)
	})
}
