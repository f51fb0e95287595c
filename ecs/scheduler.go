package ecs

import "sort"

// Stage orders systems within a frame. Systems in a lower stage run first;
// within a stage they run in the order they were added.
type Stage int

const (
	StageConfig Stage = iota
	StageInput
	StageSimulate
	StageMovement
	// StageCamera runs after every target has moved for the frame.
	StageCamera
	StagePresent
)

type scheduled struct {
	stage  Stage
	system System
}

type Scheduler struct {
	systems []scheduled
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(stage Stage, system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, scheduled{stage: stage, system: system})
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].stage < s.systems[j].stage
	})
}

func (s *Scheduler) Update(w *World) {
	for _, sc := range s.systems {
		sc.system.Update(w)
	}
}
