package genctx

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// NodeDescriptor describes the ROS node interface.
type NodeDescriptor struct {
	NodeName    string       `yaml:"node_name" validate:"required"`
	Parameters  []Parameter  `yaml:"parameters" validate:"dive"`
	Subscribers []Subscriber `yaml:"subscribers" validate:"dive"`
	Publishers  []Publisher  `yaml:"publishers" validate:"dive"`
}

// Parameter describes a ROS parameter declared by the node.
type Parameter struct {
	Name        string `yaml:"name" validate:"required"`
	Type        string `yaml:"type" validate:"required"`
	Default     any    `yaml:"default"`
	Description string `yaml:"description"`
}

// Subscriber describes a topic subscription of the node.
type Subscriber struct {
	Name        string `yaml:"name" validate:"required"`
	Topic       string `yaml:"topic" validate:"required"`
	MsgType     string `yaml:"msg_type" validate:"required"`
	Callback    string `yaml:"callback" validate:"required"`
	Description string `yaml:"description"`
}

// Publisher describes a topic publication of the node.
type Publisher struct {
	Name        string `yaml:"name" validate:"required"`
	Topic       string `yaml:"topic" validate:"required"`
	MsgType     string `yaml:"msg_type" validate:"required"`
	QueueSize   int    `yaml:"queue_size" validate:"gte=0"`
	Description string `yaml:"description"`
}

var (
	parameterKeys  = []string{"name", "type", "default", "description"}
	subscriberKeys = []string{"name", "topic", "msg_type", "callback", "description"}
	publisherKeys  = []string{"name", "topic", "msg_type", "queue_size", "description"}
)

// DefaultNodeDescriptor returns a node without parameters or topics.
func DefaultNodeDescriptor() NodeDescriptor {
	return NodeDescriptor{
		NodeName:    "generated_node",
		Parameters:  []Parameter{},
		Subscribers: []Subscriber{},
		Publishers:  []Publisher{},
	}
}

// DefaultParameter returns the values used for parameter fields left out of a descriptor.
func DefaultParameter() Parameter {
	return Parameter{
		Name:        "my_parameter",
		Type:        "float",
		Default:     0.0,
		Description: "A parameter for my package",
	}
}

// DefaultSubscriber returns the values used for subscriber fields left out of a descriptor.
func DefaultSubscriber() Subscriber {
	return Subscriber{
		Name:        "my_subscriber",
		Topic:       "my_topic",
		MsgType:     "std_msgs/String",
		Callback:    "my_callback",
		Description: "A subscriber for my package",
	}
}

// DefaultPublisher returns the values used for publisher fields left out of a descriptor.
func DefaultPublisher() Publisher {
	return Publisher{
		Name:        "my_publisher",
		Topic:       "my_topic",
		MsgType:     "std_msgs/String",
		QueueSize:   10,
		Description: "A publisher for my package",
	}
}

// UnmarshalYAML fills omitted fields from DefaultParameter and rejects unknown keys.
func (p *Parameter) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKnownKeys(node, "genctx.Parameter", parameterKeys); err != nil {
		return err
	}
	type plain Parameter
	v := plain(DefaultParameter())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Parameter(v)
	return nil
}

// UnmarshalYAML fills omitted fields from DefaultSubscriber and rejects unknown keys.
func (s *Subscriber) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKnownKeys(node, "genctx.Subscriber", subscriberKeys); err != nil {
		return err
	}
	type plain Subscriber
	v := plain(DefaultSubscriber())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = Subscriber(v)
	return nil
}

// UnmarshalYAML fills omitted fields from DefaultPublisher and rejects unknown keys.
func (p *Publisher) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKnownKeys(node, "genctx.Publisher", publisherKeys); err != nil {
		return err
	}
	type plain Publisher
	v := plain(DefaultPublisher())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Publisher(v)
	return nil
}

// Clone deep-copies the node lists, including structured parameter defaults.
func (n NodeDescriptor) Clone() NodeDescriptor {
	out := n
	out.Parameters = slices.Clone(n.Parameters)
	for i := range out.Parameters {
		out.Parameters[i].Default = cloneValue(n.Parameters[i].Default)
	}
	out.Subscribers = slices.Clone(n.Subscribers)
	out.Publishers = slices.Clone(n.Publishers)
	return out
}

// ToMap renders the node as a plain mapping.
func (n NodeDescriptor) ToMap() map[string]any {
	params := make([]any, 0, len(n.Parameters))
	for _, p := range n.Parameters {
		params = append(params, map[string]any{
			"name":        p.Name,
			"type":        p.Type,
			"default":     cloneValue(p.Default),
			"description": p.Description,
		})
	}
	subs := make([]any, 0, len(n.Subscribers))
	for _, s := range n.Subscribers {
		subs = append(subs, map[string]any{
			"name":        s.Name,
			"topic":       s.Topic,
			"msg_type":    s.MsgType,
			"callback":    s.Callback,
			"description": s.Description,
		})
	}
	pubs := make([]any, 0, len(n.Publishers))
	for _, p := range n.Publishers {
		pubs = append(pubs, map[string]any{
			"name":        p.Name,
			"topic":       p.Topic,
			"msg_type":    p.MsgType,
			"queue_size":  p.QueueSize,
			"description": p.Description,
		})
	}
	return map[string]any{
		"node_name":   n.NodeName,
		"parameters":  params,
		"subscribers": subs,
		"publishers":  pubs,
	}
}

// MessageTypes returns the message types of all publishers followed by all subscribers.
func (n NodeDescriptor) MessageTypes() []string {
	out := make([]string, 0, len(n.Publishers)+len(n.Subscribers))
	for _, p := range n.Publishers {
		out = append(out, p.MsgType)
	}
	for _, s := range n.Subscribers {
		out = append(out, s.MsgType)
	}
	return out
}
