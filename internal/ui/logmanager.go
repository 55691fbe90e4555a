package ui

import (
	"fmt"

	"fyne.io/fyne/v2/widget"
)

// DefaultMaxLogMessages bounds the in-memory log ring.
const DefaultMaxLogMessages = 100

// LogUIManager owns the one-line log display in the status bar: a
// label plus up/down buttons to walk the recent messages.
type LogUIManager struct {
	messages []string
	index    int
	max      int

	label   *widget.Label
	upBtn   *widget.Button
	downBtn *widget.Button
}

func NewLogUIManager(label *widget.Label, upBtn, downBtn *widget.Button, maxMessages int) *LogUIManager {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxLogMessages
	}
	return &LogUIManager{
		messages: make([]string, 0, maxMessages),
		index:    -1,
		max:      maxMessages,
		label:    label,
		upBtn:    upBtn,
		downBtn:  downBtn,
	}
}

// AddLogMessage appends a message and jumps the display to it.
func (lm *LogUIManager) AddLogMessage(message string) {
	if lm.label == nil {
		return
	}
	lm.messages = append(lm.messages, message)
	if len(lm.messages) > lm.max {
		lm.messages = lm.messages[len(lm.messages)-lm.max:]
	}
	lm.index = len(lm.messages) - 1
	lm.update()
}

// ShowPreviousLogMessage walks one message back in the ring.
func (lm *LogUIManager) ShowPreviousLogMessage() {
	if lm.index > 0 {
		lm.index--
		lm.update()
	}
}

// ShowNextLogMessage walks one message forward in the ring.
func (lm *LogUIManager) ShowNextLogMessage() {
	if lm.index < len(lm.messages)-1 {
		lm.index++
		lm.update()
	}
}

func (lm *LogUIManager) update() {
	if lm.label == nil || lm.upBtn == nil || lm.downBtn == nil {
		return
	}
	if len(lm.messages) == 0 {
		lm.label.SetText("")
		lm.upBtn.Disable()
		lm.downBtn.Disable()
		return
	}
	lm.label.SetText(fmt.Sprintf("[%d/%d] %s", lm.index+1, len(lm.messages), lm.messages[lm.index]))
	if lm.index <= 0 {
		lm.upBtn.Disable()
	} else {
		lm.upBtn.Enable()
	}
	if lm.index >= len(lm.messages)-1 {
		lm.downBtn.Disable()
	} else {
		lm.downBtn.Enable()
	}
}
