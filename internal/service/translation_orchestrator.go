package service

import (
	"context"
	"sort"
	"sync"

	"intellistudy_backend/internal/i18n"
	"intellistudy_backend/internal/model"

	"golang.org/x/sync/errgroup"
)

const defaultTranslationConcurrency = 8

type textTranslator interface {
	Translate(ctx context.Context, text string, target model.LanguageCode) (string, error)
}

// TranslatableNode 一段可被机器翻译的界面文案
type TranslatableNode struct {
	ID           string             `json:"id"`
	OriginalText string             `json:"originalText"`
	CurrentText  string             `json:"currentText"`
	Language     model.LanguageCode `json:"language"`
}

// TranslationOrchestrator 维护一个会话的文案视图模型。
// 翻译永远以 OriginalText 为源，失败时保留 CurrentText 不变。
type TranslationOrchestrator struct {
	mu         sync.Mutex
	nodes      map[string]*TranslatableNode
	rendered   map[string]map[string]struct{} // 节点 id -> 出现过的译文
	active     model.LanguageCode
	settled    chan struct{}
	translator textTranslator
	limit      int
}

func NewTranslationOrchestrator(translator textTranslator, concurrency int) *TranslationOrchestrator {
	if concurrency <= 0 {
		concurrency = defaultTranslationConcurrency
	}
	settled := make(chan struct{})
	close(settled)
	return &TranslationOrchestrator{
		nodes:      make(map[string]*TranslatableNode),
		rendered:   make(map[string]map[string]struct{}),
		active:     i18n.Default(),
		settled:    settled,
		translator: translator,
		limit:      concurrency,
	}
}

// Register 第一次注册时记录原文，重复注册不做任何事
func (o *TranslationOrchestrator) Register(id, text string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.nodes[id]; ok {
		return false
	}
	o.nodes[id] = newNode(id, text)
	return true
}

// Rebind 原文本身发生变化时替换节点，例如用户名。
// 客户端回传的是该节点已显示过的译文时忽略，原文不会被译文覆盖。
func (o *TranslationOrchestrator) Rebind(id, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if n, ok := o.nodes[id]; ok {
		if n.OriginalText == text {
			return
		}
		if _, seen := o.rendered[id][text]; seen {
			return
		}
	}
	o.nodes[id] = newNode(id, text)
	delete(o.rendered, id)
}

func newNode(id, text string) *TranslatableNode {
	return &TranslatableNode{
		ID:           id,
		OriginalText: text,
		CurrentText:  text,
		Language:     i18n.Default(),
	}
}

// Apply 把所有节点切换到 lang。基础语言同步还原原文，其余语言在后台翻译，
// 返回的 channel 在本次发起的请求全部结束后关闭。
func (o *TranslationOrchestrator) Apply(ctx context.Context, lang model.LanguageCode) <-chan struct{} {
	done := make(chan struct{})

	o.mu.Lock()
	o.active = lang
	o.settled = done

	if lang == i18n.Default() {
		for _, n := range o.nodes {
			n.CurrentText = n.OriginalText
			n.Language = lang
		}
		o.mu.Unlock()
		close(done)
		return done
	}

	pending := make([]TranslatableNode, 0, len(o.nodes))
	for _, n := range o.nodes {
		if n.Language != lang {
			pending = append(pending, *n)
		}
	}
	o.mu.Unlock()

	if len(pending) == 0 {
		close(done)
		return done
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		defer close(done)

		var g errgroup.Group
		g.SetLimit(o.limit)
		for _, n := range pending {
			n := n
			g.Go(func() error {
				translated, err := o.translator.Translate(bg, n.OriginalText, lang)
				if err != nil {
					return nil
				}
				o.complete(n.ID, n.OriginalText, lang, translated)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return done
}

// complete 以最后完成的结果为准，但语言已切走或原文已变化的结果直接丢弃
func (o *TranslationOrchestrator) complete(id, original string, lang model.LanguageCode, translated string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n, ok := o.nodes[id]
	if !ok || n.OriginalText != original || o.active != lang {
		return
	}
	n.CurrentText = translated
	n.Language = lang

	seen, ok := o.rendered[id]
	if !ok {
		seen = make(map[string]struct{})
		o.rendered[id] = seen
	}
	seen[translated] = struct{}{}
}

// OnLanguageChanged 订阅 LanguageContext
func (o *TranslationOrchestrator) OnLanguageChanged(_, current model.LanguageCode) {
	o.Apply(context.Background(), current)
}

// Settled 最近一次 Apply 的完成信号
func (o *TranslationOrchestrator) Settled() <-chan struct{} {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.settled
}

func (o *TranslationOrchestrator) Active() model.LanguageCode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

func (o *TranslationOrchestrator) Text(id string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n, ok := o.nodes[id]
	if !ok {
		return "", false
	}
	return n.CurrentText, true
}

func (o *TranslationOrchestrator) Snapshot() []TranslatableNode {
	o.mu.Lock()
	out := make([]TranslatableNode, 0, len(o.nodes))
	for _, n := range o.nodes {
		out = append(out, *n)
	}
	o.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
