package apiv1

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"ai-screening-backend/controllers"
	interviewhandler "ai-screening-backend/lib/interview"
	"ai-screening-backend/lib/sweeper"
	apimodels "ai-screening-backend/models/api"
	interviewapimodels "ai-screening-backend/models/api/interview"
)

type interviewApiController struct {
	controllers.BaseAPIController
}

func InitInterviewApiRouters(app *fiber.App) {
	controller := interviewApiController{}
	app.Route("interview", func(router fiber.Router) {
		router.Post("start", controller.start)
		router.Post("answer", controller.submitAnswer)
		router.Post("run-expiry", controller.runExpiry)
		router.Get("job/:id", controller.listByJob)
		router.Get("candidate/:id", controller.listByCandidate)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("complete", controller.complete)
		})
	})
}

// @Summary Запуск интервью
// @Tags Интервью
// @Description Выдача интервью по отклику из шорт-листа
// @Param	body body	 interviewapimodels.StartData	true	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/start [post]
func (c *interviewApiController) start(ctx *fiber.Ctx) error {
	var payload interviewapimodels.StartData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, hMsg, err := interviewhandler.Instance.Start(ctx.UserContext(), payload.ApplicationID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запуска интервью")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ответ на вопрос
// @Tags Интервью
// @Description Приём ответа на вопрос интервью, multipart с необязательным видео
// @Accept mpfd
// @Param   interview_id formData string  true  "ид интервью"
// @Param   question     formData string  true  "текст вопроса"
// @Param   user_answer  formData string  false "текстовый ответ"
// @Param   duration     formData int     false "длительность ответа в секундах"
// @Param   video        formData file    false "видеозапись ответа"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.AnswerResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/answer [post]
func (c *interviewApiController) submitAnswer(ctx *fiber.Ctx) error {
	duration, _ := strconv.Atoi(ctx.FormValue("duration"))
	payload := interviewapimodels.AnswerData{
		InterviewID: ctx.FormValue("interview_id"),
		Question:    ctx.FormValue("question"),
		UserAnswer:  ctx.FormValue("user_answer"),
		Duration:    duration,
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var video []byte
	videoFileName := ""
	fileHeader, err := ctx.FormFile("video")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать видеофайл"))
		}
		defer file.Close()
		video, err = io.ReadAll(file)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать видеофайл"))
		}
		videoFileName = fileHeader.Filename
	}

	view, hMsg, err := interviewhandler.Instance.SubmitAnswer(ctx.UserContext(), payload, video, videoFileName)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка приёма ответа")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ручной запуск проверки дедлайнов
// @Tags Интервью
// @Description Внеочередной проход по просроченным откликам и интервью
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/run-expiry [post]
func (c *interviewApiController) runExpiry(ctx *fiber.Ctx) error {
	if sweeper.Instance == nil {
		return c.SendError(ctx, c.GetLogger(ctx),
			errors.New("проверка дедлайнов ещё не инициализирована"), "Ошибка запуска проверки дедлайнов")
	}
	sweeper.Instance.Sweep(ctx.UserContext())
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Завершение интервью
// @Tags Интервью
// @Description Подведение итогов интервью и перенос оценки на отклик
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.CompletionView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/complete [put]
func (c *interviewApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, hMsg, err := interviewhandler.Instance.Complete(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка завершения интервью")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Получение по ИД
// @Tags Интервью
// @Description Интервью с ответами и оценками
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewWithResponsesView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id} [get]
func (c *interviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, hMsg, err := interviewhandler.Instance.GetWithResponses(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения интервью")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Интервью по вакансии
// @Tags Интервью
// @Description Список интервью вакансии
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/job/{id} [get]
func (c *interviewApiController) listByJob(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := interviewhandler.Instance.ListByJob(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка интервью")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Интервью кандидата
// @Tags Интервью
// @Description Список интервью кандидата
// @Param   id          		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/candidate/{id} [get]
func (c *interviewApiController) listByCandidate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := interviewhandler.Instance.ListByCandidate(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка интервью")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
