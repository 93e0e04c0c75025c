package camera

// State is the input state shared by a lesson's event handlers: the camera,
// the last cursor position and the frame timing.
type State struct {
	Camera *Camera

	Width, Height int

	lastX, lastY float32
	firstMouse   bool

	// DeltaTime is the duration of the last frame in seconds.
	DeltaTime float32
	lastFrame float32
}

func NewState(cam *Camera, width, height int) *State {
	return &State{
		Camera:     cam,
		Width:      width,
		Height:     height,
		lastX:      float32(width) / 2,
		lastY:      float32(height) / 2,
		firstMouse: true,
	}
}

// Aspect returns the aspect ratio of the framebuffer.
func (s *State) Aspect() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Tick records the start of a new frame at now seconds.
func (s *State) Tick(now float64) {
	t := float32(now)
	s.DeltaTime = t - s.lastFrame
	s.lastFrame = t
}

// Move moves the camera for the duration of the last frame.
func (s *State) Move(direction Movement) {
	s.Camera.ProcessKeyboard(direction, s.DeltaTime)
}

func (s *State) FramebufferResized(width, height int) {
	s.Width, s.Height = width, height
}

func (s *State) CursorMoved(x, y float64) {
	xpos, ypos := float32(x), float32(y)
	if s.firstMouse {
		s.lastX, s.lastY = xpos, ypos
		s.firstMouse = false
	}
	xoffset := xpos - s.lastX
	// Window coordinates grow downwards.
	yoffset := s.lastY - ypos
	s.lastX, s.lastY = xpos, ypos
	s.Camera.ProcessMouseMovement(xoffset, yoffset)
}

func (s *State) Scrolled(_, yoffset float64) {
	s.Camera.ProcessMouseScroll(float32(yoffset))
}
