package timelines

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/api/types"
)

// RegisterRoutes registers timeline editing routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", ListTimelines(deps))

	timeline := router.Group("/:mediaId")
	{
		timeline.POST("", SeedTimeline(deps))
		timeline.GET("", GetTimeline(deps))
		timeline.DELETE("", DeleteTimeline(deps))
		timeline.DELETE("/session", CloseTimeline(deps))

		timeline.GET("/history", GetHistory(deps))
		timeline.POST("/undo", Undo(deps))
		timeline.POST("/redo", Redo(deps))

		timeline.POST("/save", SaveTimeline(deps))
		timeline.GET("/save", GetSaveStatus(deps))

		timeline.PUT("/playhead", SetPlayhead(deps))
		timeline.PATCH("/settings", UpdateSettings(deps))
		timeline.GET("/edges", NearestEdge(deps))
	}

	tracks := timeline.Group("/tracks/:trackId")
	{
		tracks.PATCH("", EditTrack(deps))
		tracks.POST("/toggle", ToggleTrack(deps))
		tracks.POST("/merge", MergeClips(deps))
		tracks.POST("/paste", PasteClip(deps))
		tracks.GET("/stats", GetTrackStatistics(deps))
		tracks.GET("/gaps", GetTrackGaps(deps))
		tracks.GET("/overlaps", GetTrackOverlaps(deps))
		tracks.GET("/export.edl", ExportEDL(deps))

		tracks.POST("/clips", AddClip(deps))
	}

	clips := tracks.Group("/clips/:clipId")
	{
		clips.PATCH("", EditClip(deps))
		clips.DELETE("", DeleteClip(deps))
		clips.POST("/split", SplitClip(deps))
		clips.POST("/trim", TrimClip(deps))
		clips.POST("/move", MoveClip(deps))
		clips.POST("/extract", ExtractRange(deps))
		clips.POST("/duplicate", DuplicateClip(deps))
		clips.POST("/copy", CopyClip(deps))
	}
}
