package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Lifecycle is implemented by controllers the host drives explicitly instead of
// through the per-frame component loop. Start is called once the scene is
// assembled, Stop when the controller is disabled, Dispose on teardown.
type Lifecycle interface {
	Start()
	Stop()
	Dispose()
}

// Ticker is implemented by controllers that advance on elapsed time.
type Ticker interface {
	Tick(deltaTime float32)
}

// CollisionHandler is implemented by components that want to receive trigger callbacks.
// Scripts can implement these methods to react to overlap with other colliders.
type CollisionHandler interface {
	OnCollisionEnter(other *GameObject)
	OnCollisionExit(other *GameObject)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
