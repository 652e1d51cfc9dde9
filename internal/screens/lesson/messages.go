package lesson

import "github.com/devika/tutora/internal/store"

type progressLoadedMsg struct {
	progress *store.Progress
}

type chatReplyMsg struct {
	answer string
	err    error
}

type diagramReadyMsg struct {
	art string
	err error
}
