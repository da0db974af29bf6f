package conversation

import (
	"context"
	"strings"

	"github.com/okravets/barberflow/internal/clients"
	"github.com/okravets/barberflow/internal/session"
)

func (e *Engine) handleSurvey(ctx context.Context, sess *session.Session, text string) error {
	draft := sess.Survey
	if draft == nil {
		return e.toMenu(ctx, sess, msgUnknownCommand)
	}

	// The go-back token aborts the whole survey and discards collected
	// answers.
	if strings.EqualFold(text, btnSurveyLeave) {
		return e.toMenu(ctx, sess, msgSurveyLeft)
	}

	draft.Answers = append(draft.Answers, text)
	draft.QuestionIndex++

	if draft.QuestionIndex < len(surveyQuestions) {
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, sess.ChatID, Reply{
			Text:     surveyQuestions[draft.QuestionIndex],
			Keyboard: [][]string{{btnSurveyLeave}},
		})
		return nil
	}

	a := draft.Answers
	if err := e.profiles.SaveSurvey(ctx, sess.ChatID, clients.SurveyAnswers{
		FullName:      a[0],
		Phone:         a[1],
		HairLength:    a[2],
		HasBeard:      parseYesNo(a[3]),
		WhyChoseUs:    a[4],
		LikesDislikes: a[5],
		Suggestions:   a[6],
	}); err != nil {
		return err
	}

	e.logger.Info("survey completed", "chat_id", sess.ChatID)
	return e.toMenu(ctx, sess, msgSurveyThanks)
}

// parseYesNo interprets the beard answer; anything unrecognized counts as no.
func parseYesNo(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y", "yeah", "yep", "так", "є":
		return true
	default:
		return false
	}
}
