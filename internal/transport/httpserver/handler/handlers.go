package handler

import (
	brawlershandler "brawl-missions/internal/transport/httpserver/handler/brawlers"
	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
	crewhandler "brawl-missions/internal/transport/httpserver/handler/crew"
	missionshandler "brawl-missions/internal/transport/httpserver/handler/missions"
)

type Handlers struct {
	Common   *commonhandler.Handlers
	Missions *missionshandler.Handlers
	Crew     *crewhandler.Handlers
	Brawlers *brawlershandler.Handlers
}

func New(common *commonhandler.Handlers, missions *missionshandler.Handlers, crew *crewhandler.Handlers, brawlers *brawlershandler.Handlers) *Handlers {
	return &Handlers{
		Common:   common,
		Missions: missions,
		Crew:     crew,
		Brawlers: brawlers,
	}
}
