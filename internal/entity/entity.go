package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Scenario struct {
	Name    string
	Source  string
	Browser string
	BaseURL string
	Timeout time.Duration
	Steps   []Step
}

type Step struct {
	Action ActionType
	Args   []string
	// Line is the line of the step in Source, 0 for steps typed in the shell.
	Line int
}

// Arg returns the i-th argument or "" when the step has fewer arguments.
func (s Step) Arg(i int) string {
	if i < len(s.Args) {
		return s.Args[i]
	}

	return ""
}

type ActionType string

const (
	ActionTypeOpen               ActionType = "open"
	ActionTypeGoBack             ActionType = "go_back"
	ActionTypeRefresh            ActionType = "refresh"
	ActionTypeClick              ActionType = "click"
	ActionTypeClickAndWait       ActionType = "click_and_wait"
	ActionTypeDoubleClick        ActionType = "double_click"
	ActionTypeType               ActionType = "type"
	ActionTypeSelect             ActionType = "select"
	ActionTypeCheck              ActionType = "check"
	ActionTypeUncheck            ActionType = "uncheck"
	ActionTypeSubmit             ActionType = "submit"
	ActionTypeSubmitAndWait      ActionType = "submit_and_wait"
	ActionTypeWaitForPageToLoad  ActionType = "wait_for_page_to_load"
	ActionTypeKeyPress           ActionType = "key_press"
	ActionTypeDragAndDrop        ActionType = "drag_and_drop"
	ActionTypeSelectWindow       ActionType = "select_window"
	ActionTypeSelectFrame        ActionType = "select_frame"
	ActionTypeCreateCookie       ActionType = "create_cookie"
	ActionTypeDeleteCookie       ActionType = "delete_cookie"
	ActionTypeDeleteAllCookies   ActionType = "delete_all_cookies"
	ActionTypeEval               ActionType = "eval"
	ActionTypeScreenshot         ActionType = "screenshot"
	ActionTypeAssertText         ActionType = "assert_text"
	ActionTypeAssertTitle        ActionType = "assert_title"
	ActionTypeAssertLocation     ActionType = "assert_location"
	ActionTypeAssertPresent      ActionType = "assert_present"
	ActionTypeAssertVisible      ActionType = "assert_visible"
	ActionTypeAssertChecked      ActionType = "assert_checked"
	ActionTypeAssertCookie       ActionType = "assert_cookie"
	ActionTypeAssertNotPresent   ActionType = "assert_not_present"
	ActionTypeAssertValue        ActionType = "assert_value"
	ActionTypeAssertSelectedText ActionType = "assert_selected_label"
)

// Arity is the accepted argument count of an action.
type Arity struct {
	Min int
	Max int
}

var actionArity = map[ActionType]Arity{
	ActionTypeOpen:               {1, 1},
	ActionTypeGoBack:             {0, 0},
	ActionTypeRefresh:            {0, 0},
	ActionTypeClick:              {1, 1},
	ActionTypeClickAndWait:       {1, 1},
	ActionTypeDoubleClick:        {1, 1},
	ActionTypeType:               {2, 2},
	ActionTypeSelect:             {2, 2},
	ActionTypeCheck:              {1, 1},
	ActionTypeUncheck:            {1, 1},
	ActionTypeSubmit:             {1, 1},
	ActionTypeSubmitAndWait:      {1, 1},
	ActionTypeWaitForPageToLoad:  {0, 1},
	ActionTypeKeyPress:           {2, 2},
	ActionTypeDragAndDrop:        {2, 2},
	ActionTypeSelectWindow:       {0, 1},
	ActionTypeSelectFrame:        {1, 1},
	ActionTypeCreateCookie:       {2, 3},
	ActionTypeDeleteCookie:       {1, 1},
	ActionTypeDeleteAllCookies:   {0, 0},
	ActionTypeEval:               {1, 1},
	ActionTypeScreenshot:         {0, 1},
	ActionTypeAssertText:         {1, 2},
	ActionTypeAssertTitle:        {1, 1},
	ActionTypeAssertLocation:     {1, 1},
	ActionTypeAssertPresent:      {1, 1},
	ActionTypeAssertNotPresent:   {1, 1},
	ActionTypeAssertVisible:      {1, 1},
	ActionTypeAssertChecked:      {1, 1},
	ActionTypeAssertCookie:       {1, 2},
	ActionTypeAssertValue:        {2, 2},
	ActionTypeAssertSelectedText: {2, 2},
}

// ArityOf reports the accepted argument count of a, and false for unknown
// actions.
func ArityOf(a ActionType) (Arity, bool) {
	arity, ok := actionArity[a]

	return arity, ok
}

// Actions lists every known action.
func Actions() []ActionType {
	actions := make([]ActionType, 0, len(actionArity))
	for a := range actionArity {
		actions = append(actions, a)
	}

	slices.Sort(actions)

	return actions
}

type Run struct {
	ID          uuid.UUID
	Scenario    string
	SessionID   string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Steps       []StepRecord
	Error       string
}

type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Failed returns the first failed step, if any.
func (r *Run) Failed() (StepRecord, bool) {
	for _, s := range r.Steps {
		if !s.Success {
			return s, true
		}
	}

	return StepRecord{}, false
}

type StepRecord struct {
	ID          uuid.UUID
	Action      ActionType
	Description string
	Line        int
	Timestamp   time.Time
	Elapsed     time.Duration
	Success     bool
	Result      string
	Error       string
	Screenshot  string
}
