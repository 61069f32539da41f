package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "ai-screening-backend/models/db"
)

type Provider interface {
	// ExportScreeningReport выгружает отчёт по откликам вакансии с оценками резюме и интервью.
	ExportScreeningReport(job dbmodels.Job, list []dbmodels.Application) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var screeningHeaders = []string{"ФИО", "Контакты", "Оценка резюме", "Шорт-лист", "Оценка интервью", "Статус"}

func (i impl) ExportScreeningReport(job dbmodels.Job, list []dbmodels.Application) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeReportHeader(f, sheet, screeningHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeScreeningData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	sheetName := job.Title
	if sheetName == "" {
		sheetName = "Отчёт"
	}
	f.SetSheetName(sheet, sheetName)
	return f.WriteToBuffer()
}

func writeScreeningData(f *excelize.File, sheet string, list []dbmodels.Application, row int) (int, error) {
	if err := styleReportRows(f, sheet, len(screeningHeaders), len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "ФИО"
		col := 1
		fio := fmt.Sprintf("%v %v", item.Candidate.LastName, item.Candidate.FirstName)
		if err := setCell(f, sheet, col, row, fio); err != nil {
			return row, err
		}

		// "Контакты"
		col++
		if err := setCell(f, sheet, col, row, fmt.Sprintf("%v\r%v", item.Candidate.Phone, item.Candidate.Email)); err != nil {
			return row, err
		}

		// "Оценка резюме"
		col++
		if err := setCell(f, sheet, col, row, item.ResumeScore); err != nil {
			return row, err
		}

		// "Шорт-лист"
		col++
		shortlisted := "нет"
		if item.Shortlisted {
			shortlisted = "да"
		}
		if err := setCell(f, sheet, col, row, shortlisted); err != nil {
			return row, err
		}

		// "Оценка интервью"
		col++
		if item.InterviewScore != nil {
			if err := setCell(f, sheet, col, row, *item.InterviewScore); err != nil {
				return row, err
			}
		}

		// "Статус"
		col++
		if err := setCell(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}
	}
	return row, nil
}
