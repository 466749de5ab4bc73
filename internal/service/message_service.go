package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"redbook-go/internal/model"
	"redbook-go/internal/repository"
	"redbook-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSelfMessage  = errors.New("不能给自己发私信")
	ErrEmptyMessage = errors.New("私信内容不能为空")
)

// Conversation 会话列表中的一项
type Conversation struct {
	Peer        model.User
	LastMessage model.Message
	UnreadCount int64
}

// UnreadSummary 未读角标：私信与通知分开计数
type UnreadSummary struct {
	Messages      int64
	Notifications int64
	Total         int64
}

type MessageService struct {
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	notifRepo   *repository.NotificationRepository
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	notifRepo *repository.NotificationRepository,
) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, notifRepo: notifRepo}
}

// Send 发送私信
func (s *MessageService) Send(ctx context.Context, senderID, receiverID int64, content string) (*model.Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	exists, err := s.userRepo.ExistsByID(receiverID)
	if err != nil {
		return nil, fmt.Errorf("check receiver: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	logger.Info("Message sent",
		zap.Int64("message_id", message.ID),
		zap.Int64("sender_id", senderID),
		zap.Int64("receiver_id", receiverID),
	)
	return message, nil
}

// History 与某对端的会话消息。按时间倒序取最近一页，再翻转成升序展示。
func (s *MessageService) History(ctx context.Context, userID, peerID int64, limit, offset int) ([]model.Message, error) {
	messages, err := s.messageRepo.ListBetween(userID, peerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ListConversations 会话列表：每个对端取资料、最近一条消息和未读数
func (s *MessageService) ListConversations(ctx context.Context, userID int64) ([]Conversation, error) {
	peers, err := s.messageRepo.ListConversationPeers(userID)
	if err != nil {
		return nil, fmt.Errorf("list conversation peers: %w", err)
	}

	conversations := make([]Conversation, 0, len(peers))
	for _, peerID := range peers {
		peer, err := s.userRepo.GetByID(peerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 对端账号已不存在，跳过该会话
				continue
			}
			return nil, fmt.Errorf("load peer %d: %w", peerID, err)
		}

		last, err := s.messageRepo.GetLastBetween(userID, peerID)
		if err != nil {
			return nil, fmt.Errorf("load last message with %d: %w", peerID, err)
		}

		unread, err := s.messageRepo.CountUnreadFrom(peerID, userID)
		if err != nil {
			return nil, fmt.Errorf("count unread from %d: %w", peerID, err)
		}

		conversations = append(conversations, Conversation{
			Peer:        *peer,
			LastMessage: *last,
			UnreadCount: unread,
		})
	}
	return conversations, nil
}

// MarkRead 将某对端发来的消息全部标记已读
func (s *MessageService) MarkRead(ctx context.Context, userID, peerID int64) error {
	if err := s.messageRepo.MarkRead(peerID, userID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// UnreadSummary 未读私信数与未读通知数
func (s *MessageService) UnreadSummary(ctx context.Context, userID int64) (*UnreadSummary, error) {
	messages, err := s.messageRepo.CountUnread(userID)
	if err != nil {
		return nil, fmt.Errorf("count unread messages: %w", err)
	}
	notifications, err := s.notifRepo.CountUnread(userID)
	if err != nil {
		return nil, fmt.Errorf("count unread notifications: %w", err)
	}

	return &UnreadSummary{
		Messages:      messages,
		Notifications: notifications,
		Total:         messages + notifications,
	}, nil
}
