package usecase

import (
	"context"

	"github.com/xavierca1/ligue-attio-sync/internal/entity"
)

// Pipeline roda estágios em ordem e para no primeiro erro.
// Não existe compensação: o que o CRM já aceitou fica lá, e o resultado informa o estágio que falhou.
type Pipeline struct {
	stages []Stage
	state  entity.SyncState
}

type Stage struct {
	Name entity.Stage
	Fn   func(context.Context) error
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		stages: []Stage{},
		state:  entity.StatePending,
	}
}

func (p *Pipeline) AddStage(name entity.Stage, fn func(context.Context) error) {
	p.stages = append(p.stages, Stage{name, fn})
}

// State é o último estado alcançado.
func (p *Pipeline) State() entity.SyncState {
	return p.state
}

// Execute devolve o estágio que falhou e o erro dele. Estágio vazio significa sucesso.
func (p *Pipeline) Execute(ctx context.Context) (entity.Stage, error) {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			p.state = entity.StatePartialFailure
			return stage.Name, err
		}
		if err := stage.Fn(ctx); err != nil {
			p.state = entity.StatePartialFailure
			return stage.Name, err
		}
		p.state = stage.Name.Next()
	}
	return "", nil
}
