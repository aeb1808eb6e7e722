package telegram

import (
	"fmt"
	"strings"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// User-visible texts. Uzbek is the default before a language is chosen;
// after the language step, pipeline messages follow the selected language.

const (
	msgRegistrationPrompt = "👋 Salom! Botdan foydalanish uchun ro'yxatdan o'ting:\n\n" +
		"🔐 Ma'lumotlaringiz xavfsiz saqlanadi\n" +
		"⚡ Bir marta ro'yxatdan o'ting, doim foydalaning"
	msgRegistrationInvalid   = "❌ Ma'lumotlarni qayta ishlashda xatolik yuz berdi."
	msgRegistrationDuplicate = "❌ Xatolik yuz berdi. Bu email yoki Telegram ID allaqachon ro'yxatdan o'tgan.\n\n" +
		"Agar muammo bo'lsa, @support ga murojaat qiling."

	msgChooseLanguage   = "Tilni tanlang:"
	msgChooseSlideCount = "Slayd sonini tanlang:"
	msgChooseTheme      = "🎨 Fon rangini tanlang:"
	msgThemeOfferButton = "✅ Tanlayman"

	msgHelp = "Bot mavzu bo'yicha tayyor prezentatsiya yasab beradi.\n" +
		"Boshlash uchun /start bosing"
	msgUnknownCommand = "Noma'lum buyruq.\n/start bosib yangi prezentatsiya yarating"
	msgRestartHint    = "/start bosib yangi prezentatsiya yarating"
	msgInternalError  = "❌ Xatolik yuz berdi. /start bosib qayta urinib ko'ring."
)

func msgWelcome(fullName, gmail, phone string, age int) string {
	return fmt.Sprintf("✅ Xush kelibsiz, %s!\n\n"+
		"📧 Gmail: %s\n"+
		"📱 Telefon: %s\n"+
		"🎂 Yosh: %d\n\n"+
		"Endi /start buyrug'ini bosing va prezentatsiya yarating!",
		fullName, gmail, phone, age)
}

func msgGreeting(fullName string, stats domain.Statistics) string {
	return fmt.Sprintf("Salom, %s! 👋\n\n"+
		"📊 Siz %d ta prezentatsiya yaratdingiz\n"+
		"📑 Jami %d ta slayd\n\n"+
		msgChooseLanguage,
		fullName, stats.Presentations, stats.TotalSlides)
}

func msgStatistics(account domain.Account, stats domain.Statistics) string {
	var recent strings.Builder
	if len(stats.RecentTopics) > 0 {
		recent.WriteString("\n\n📋 Oxirgi prezentatsiyalar:\n")
		for _, record := range stats.RecentTopics {
			fmt.Fprintf(&recent, "• %s (%d slayd)\n", record.Topic, record.SlideCount)
		}
	}

	return fmt.Sprintf("📊 Sizning statistikangiz:\n\n"+
		"👤 Ism: %s\n"+
		"📧 Gmail: %s\n"+
		"📱 Telefon: %s\n"+
		"🎂 Yosh: %d\n\n"+
		"📈 Yaratilgan prezentatsiyalar: %d\n"+
		"📑 Jami slaydlar: %d\n"+
		"📅 Ro'yxatdan o'tgan: %s\n"+
		"🕒 Oxirgi kirish: %s%s",
		account.FullName, account.Gmail, account.PhoneNumber, account.Age,
		stats.Presentations, stats.TotalSlides,
		stats.RegisteredAt.Format("2006-01-02"),
		stats.LastLoginAt.Format("2006-01-02 15:04"),
		recent.String())
}

func msgSlideCountConfirmed(count int) string {
	return fmt.Sprintf("✓ Slaydlar: %d\n\n%s", count, msgChooseTheme)
}

func msgTopicPrompt(themeLabel string) string {
	return fmt.Sprintf("✓ Fon: %s\n\n📝 Endi mavzuni yozing:", themeLabel)
}

func msgProgress(lang domain.Language, topic string, slideCount int) string {
	if lang == domain.LanguageEn {
		return fmt.Sprintf("🔍 Gathering information about '%s'...\n"+
			"📊 %d slides with images\n\n"+
			"⏳ Please wait (30-40 seconds)...", topic, slideCount)
	}
	return fmt.Sprintf("🔍 '%s' mavzusi bo'yicha ma'lumot yig'yapman...\n"+
		"📊 %d ta slayd, rasmlar bilan\n\n"+
		"⏳ Biroz kuting (30-40 soniya)...", topic, slideCount)
}

func msgGenerationFailed(lang domain.Language) string {
	if lang == domain.LanguageEn {
		return "❌ Sorry, error occurred. Try /start again."
	}
	return "❌ Uzr, ma'lumotni shakllantirishda xatolik bo'ldi. /start bosib qayta urinib ko'ring."
}

func msgCompositionFailed(lang domain.Language) string {
	if lang == domain.LanguageEn {
		return "❌ File creation error."
	}
	return "❌ Fayl yaratishda xatolik yuz berdi."
}

func msgDeckReady(lang domain.Language, topic string, slideCount int) string {
	if lang == domain.LanguageEn {
		return fmt.Sprintf("✅ Your presentation about '%s' is ready!\n\n📊 %d slides + images",
			topic, slideCount)
	}
	return fmt.Sprintf("✅ Mana, '%s' bo'yicha prezentatsiyangiz tayyor!\n\n📊 %d ta slayd + rasmlar",
		topic, slideCount)
}

func msgCreateAnother(lang domain.Language) string {
	if lang == domain.LanguageEn {
		return "🎉 Want to create another? Press /start"
	}
	return "🎉 Yana prezentatsiya yasamoqchimisiz? /start bosing"
}

func msgLanguageConfirmed(lang domain.Language) string {
	if lang == domain.LanguageEn {
		return "English selected ✓"
	}
	return "O'zbekcha tanlandi ✓"
}
